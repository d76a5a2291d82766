package handlers

import (
	"net/http"

	emailRepo "orgflow/database/repository/email"
	expenseRepo "orgflow/database/repository/expense"
	leaveRepo "orgflow/database/repository/leave"
	"orgflow/services/employee"
	"orgflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes admin-only views over employees and the approval
// queues. Routes behind it require the admin role.
type AdminHandler struct {
	Employees employee.EmployeeService
	Leaves    leaveRepo.LeaveRepository
	Expenses  expenseRepo.ExpenseRepository
	EmailLogs emailRepo.LogRepository
}

func NewAdminHandler(employees employee.EmployeeService, leaves leaveRepo.LeaveRepository, expenses expenseRepo.ExpenseRepository, emailLogs emailRepo.LogRepository) *AdminHandler {
	return &AdminHandler{Employees: employees, Leaves: leaves, Expenses: expenses, EmailLogs: emailLogs}
}

// ListEmployeesHandler handles GET /api/admin/employees.
func (h *AdminHandler) ListEmployeesHandler(c *gin.Context) {
	employees, err := h.Employees.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, employees)
}

// PendingApprovalsHandler handles GET /api/admin/pending-approvals. It
// aggregates every pending record across record types.
func (h *AdminHandler) PendingApprovalsHandler(c *gin.Context) {
	logger := utils.GetLogger()

	leaves, err := h.Leaves.ListPending(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list pending leaves", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	expenses, err := h.Expenses.ListPending(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list pending expenses", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaves": leaves, "expenses": expenses})
}

// EmailLogsHandler handles GET /api/admin/email-logs?recordType=&recordId=.
func (h *AdminHandler) EmailLogsHandler(c *gin.Context) {
	recordType := c.Query("recordType")
	recordID := c.Query("recordId")
	if recordType == "" || recordID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recordType and recordId are required"})
		return
	}
	logs, err := h.EmailLogs.ListByRecord(c.Request.Context(), recordType, recordID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}
