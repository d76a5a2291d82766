package handlers

import (
	"errors"
	"net/http"

	"orgflow/models"
	"orgflow/services/employee"
	"orgflow/services/expense"
	"orgflow/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ExpenseHandler exposes the expense claim lifecycle over REST.
type ExpenseHandler struct {
	Service   expense.ExpenseService
	Employees employee.EmployeeService
}

func NewExpenseHandler(svc expense.ExpenseService, employees employee.EmployeeService) *ExpenseHandler {
	return &ExpenseHandler{Service: svc, Employees: employees}
}

// SubmitHandler handles POST /api/expenses.
func (h *ExpenseHandler) SubmitHandler(c *gin.Context) {
	logger := utils.GetLogger()
	employeeID := c.GetString("employeeID")

	var input expense.SubmitExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expense payload"})
		return
	}

	claim, report, err := h.Service.Submit(c.Request.Context(), employeeID, input)
	if err != nil {
		logger.Error("Expense submission failed", zap.String("employeeID", employeeID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"expense": claim, "delivery": report})
}

// ListMineHandler handles GET /api/expenses.
func (h *ExpenseHandler) ListMineHandler(c *gin.Context) {
	employeeID := c.GetString("employeeID")
	claims, err := h.Service.ListMine(c.Request.Context(), employeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, claims)
}

// ListPendingHandler handles GET /api/expenses/pending.
func (h *ExpenseHandler) ListPendingHandler(c *gin.Context) {
	employeeID := c.GetString("employeeID")
	claims, err := h.Service.ListPendingForApprover(c.Request.Context(), employeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, claims)
}

// GetHandler handles GET /api/expenses/:id.
func (h *ExpenseHandler) GetHandler(c *gin.Context) {
	claim, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, claim)
}

// ApproveHandler handles POST /api/expenses/:id/approve.
func (h *ExpenseHandler) ApproveHandler(c *gin.Context) {
	h.decide(c, models.EmailActionApprove, "")
}

// RejectHandler handles POST /api/expenses/:id/reject.
func (h *ExpenseHandler) RejectHandler(c *gin.Context) {
	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)
	h.decide(c, models.EmailActionReject, body.Reason)
}

func (h *ExpenseHandler) decide(c *gin.Context, action, reason string) {
	logger := utils.GetLogger()
	actorID := c.GetString("employeeID")

	actor, err := h.Employees.GetByID(c.Request.Context(), actorID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown actor"})
		return
	}

	var claim interface{}
	if action == models.EmailActionApprove {
		claim, err = h.Service.Approve(c.Request.Context(), c.Param("id"), actor)
	} else {
		claim, err = h.Service.Reject(c.Request.Context(), c.Param("id"), actor, reason)
	}
	if err != nil {
		logger.Warn("Expense decision rejected",
			zap.String("expenseID", c.Param("id")),
			zap.String("actorID", actorID),
			zap.String("action", action),
			zap.Error(err))
		c.JSON(decisionStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, claim)
}
