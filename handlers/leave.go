package handlers

import (
	"errors"
	"net/http"

	expenseRepo "orgflow/database/repository/expense"
	leaveRepo "orgflow/database/repository/leave"
	"orgflow/models"
	"orgflow/services/approval"
	"orgflow/services/employee"
	"orgflow/services/leave"
	"orgflow/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// LeaveHandler exposes the leave request lifecycle over REST.
type LeaveHandler struct {
	Service   leave.LeaveService
	Employees employee.EmployeeService
}

func NewLeaveHandler(svc leave.LeaveService, employees employee.EmployeeService) *LeaveHandler {
	return &LeaveHandler{Service: svc, Employees: employees}
}

// SubmitHandler handles POST /api/leaves.
func (h *LeaveHandler) SubmitHandler(c *gin.Context) {
	logger := utils.GetLogger()
	employeeID := c.GetString("employeeID")

	var input leave.SubmitLeaveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid leave request payload"})
		return
	}

	req, report, err := h.Service.Submit(c.Request.Context(), employeeID, input)
	if err != nil {
		logger.Error("Leave submission failed", zap.String("employeeID", employeeID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"leave": req, "delivery": report})
}

// ListMineHandler handles GET /api/leaves.
func (h *LeaveHandler) ListMineHandler(c *gin.Context) {
	employeeID := c.GetString("employeeID")
	leaves, err := h.Service.ListMine(c.Request.Context(), employeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, leaves)
}

// ListPendingHandler handles GET /api/leaves/pending.
func (h *LeaveHandler) ListPendingHandler(c *gin.Context) {
	employeeID := c.GetString("employeeID")
	leaves, err := h.Service.ListPendingForApprover(c.Request.Context(), employeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, leaves)
}

// GetHandler handles GET /api/leaves/:id.
func (h *LeaveHandler) GetHandler(c *gin.Context) {
	req, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Leave request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, req)
}

// ApproveHandler handles POST /api/leaves/:id/approve.
func (h *LeaveHandler) ApproveHandler(c *gin.Context) {
	h.decide(c, models.EmailActionApprove, "")
}

// RejectHandler handles POST /api/leaves/:id/reject.
func (h *LeaveHandler) RejectHandler(c *gin.Context) {
	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)
	h.decide(c, models.EmailActionReject, body.Reason)
}

func (h *LeaveHandler) decide(c *gin.Context, action, reason string) {
	logger := utils.GetLogger()
	actorID := c.GetString("employeeID")

	actor, err := h.Employees.GetByID(c.Request.Context(), actorID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown actor"})
		return
	}

	var req interface{}
	if action == models.EmailActionApprove {
		req, err = h.Service.Approve(c.Request.Context(), c.Param("id"), actor)
	} else {
		req, err = h.Service.Reject(c.Request.Context(), c.Param("id"), actor, reason)
	}
	if err != nil {
		logger.Warn("Leave decision rejected",
			zap.String("leaveID", c.Param("id")),
			zap.String("actorID", actorID),
			zap.String("action", action),
			zap.Error(err))
		c.JSON(decisionStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, req)
}

// decisionStatus maps approval workflow errors to HTTP status codes.
func decisionStatus(err error) int {
	var selfErr *approval.SelfApprovalError
	var approverErr *approval.NotApproverError
	var transitionErr *approval.TransitionError
	switch {
	case errors.As(err, &selfErr), errors.As(err, &approverErr):
		return http.StatusForbidden
	case errors.As(err, &transitionErr),
		errors.Is(err, leaveRepo.ErrStatusConflict),
		errors.Is(err, expenseRepo.ErrStatusConflict):
		return http.StatusConflict
	case errors.Is(err, mongo.ErrNoDocuments):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
