package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"bookstore-api/models"
	"bookstore-api/services"

	"github.com/gin-gonic/gin"
)

// ListBooks returns the catalog (public)
func ListBooks(c *gin.Context) {
	books, err := bookSvc.FindAll(services.BookFilter{
		Search: c.Query("search"),
		Author: c.Query("author"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(books), "books": books})
}

// GetBook returns a single book (public)
func GetBook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	book, err := bookSvc.FindByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"book": book})
}

type BookRequest struct {
	Title       string  `json:"title" binding:"required"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
}

func (r BookRequest) model() models.Book {
	return models.Book{
		Title:       r.Title,
		Author:      r.Author,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		ImageURL:    r.ImageURL,
	}
}

// CreateBook adds a book to the catalog (admin)
func CreateBook(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	book := req.model()
	if err := bookSvc.Create(&book); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"book": book})
}

// UpdateBook edits a catalog entry (admin). Changing the price never touches
// the frozen totals of already-placed orders.
func UpdateBook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := req.model()
	book, err := bookSvc.Update(id, &patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"book": book})
}

// DeleteBook removes a catalog entry (admin)
func DeleteBook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := bookSvc.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book deleted"})
}

// BulkCreateBooks inserts many books at once, skipping duplicate titles (admin)
func BulkCreateBooks(c *gin.Context) {
	var reqs []BookRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	books := make([]models.Book, len(reqs))
	for i, r := range reqs {
		books[i] = r.model()
	}
	inserted, skipped, err := bookSvc.BulkCreate(books)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"inserted_count": len(inserted),
		"skipped_count":  len(skipped),
		"inserted_books": inserted,
		"skipped_titles": skipped,
	})
}

// UploadBookImage stores a cover image and returns its URL (admin)
func UploadBookImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file selected"})
		return
	}
	filename := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
	dst := filepath.Join(cfg.UploadDir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": "/uploads/" + filename})
}
