package handlers

import (
	"net/http"

	"bookstore-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetStateMachineInfo returns the order lifecycle graph for documentation
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []string{"DELIVERED", "CANCELLED"},
		"description":     "Bookstore Order Lifecycle State Machine",
	})
}
