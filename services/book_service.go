package services

import (
	"errors"

	"bookstore-api/errs"
	"bookstore-api/models"

	"gorm.io/gorm"
)

// BookService is the catalog collaborator: public reads plus admin CRUD.
type BookService struct {
	db *gorm.DB
}

func NewBookService(db *gorm.DB) *BookService {
	return &BookService{db: db}
}

// BookFilter narrows catalog listings.
type BookFilter struct {
	Search string
	Author string
}

func (s *BookService) FindAll(filter BookFilter) ([]models.Book, error) {
	query := s.db.Model(&models.Book{})
	if filter.Search != "" {
		query = query.Where("title LIKE ?", "%"+filter.Search+"%")
	}
	if filter.Author != "" {
		query = query.Where("author LIKE ?", "%"+filter.Author+"%")
	}
	var books []models.Book
	if err := query.Find(&books).Error; err != nil {
		return nil, errs.Internal(err)
	}
	return books, nil
}

func (s *BookService) FindByID(id uint) (*models.Book, error) {
	var book models.Book
	if err := s.db.First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("book not found")
		}
		return nil, errs.Internal(err)
	}
	return &book, nil
}

func (s *BookService) Create(book *models.Book) error {
	if err := s.db.Create(book).Error; err != nil {
		return errs.Internal(err)
	}
	return nil
}

func (s *BookService) Update(id uint, patch *models.Book) (*models.Book, error) {
	book, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	book.Title = patch.Title
	book.Author = patch.Author
	book.Description = patch.Description
	book.Price = patch.Price
	book.Stock = patch.Stock
	if patch.ImageURL != "" {
		book.ImageURL = patch.ImageURL
	}
	if err := s.db.Save(book).Error; err != nil {
		return nil, errs.Internal(err)
	}
	return book, nil
}

func (s *BookService) Delete(id uint) error {
	res := s.db.Delete(&models.Book{}, id)
	if res.Error != nil {
		return errs.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("book not found")
	}
	return nil
}

// BulkCreate inserts books, skipping titles that already exist. Returns the
// inserted books and the skipped titles.
func (s *BookService) BulkCreate(books []models.Book) ([]models.Book, []string, error) {
	var inserted []models.Book
	var skipped []string
	for i := range books {
		var count int64
		s.db.Model(&models.Book{}).Where("title = ?", books[i].Title).Count(&count)
		if count > 0 {
			skipped = append(skipped, books[i].Title)
			continue
		}
		if err := s.db.Create(&books[i]).Error; err != nil {
			skipped = append(skipped, books[i].Title)
			continue
		}
		inserted = append(inserted, books[i])
	}
	return inserted, skipped, nil
}
