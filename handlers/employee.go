package handlers

import (
	"net/http"

	"orgflow/models"
	"orgflow/services/employee"
	"orgflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EmployeeHandler exposes the staff account endpoints.
type EmployeeHandler struct {
	Service employee.EmployeeService
}

func NewEmployeeHandler(svc employee.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{Service: svc}
}

// RegisterHandler handles POST /api/employees/register.
func (h *EmployeeHandler) RegisterHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Name               string `json:"name" binding:"required"`
		Email              string `json:"email" binding:"required,email"`
		Password           string `json:"password" binding:"required"`
		Role               string `json:"role"`
		Department         string `json:"department"`
		ReportingManagerID string `json:"reportingManagerId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := h.Service.Register(c.Request.Context(), models.Employee{
		Name:               req.Name,
		Email:              req.Email,
		Role:               req.Role,
		Department:         req.Department,
		ReportingManagerID: req.ReportingManagerID,
	}, req.Password)
	if err != nil {
		logger.Error("Failed to register employee", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, e)
}

// LoginHandler handles POST /api/employees/login.
func (h *EmployeeHandler) LoginHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("Failed login attempt", zap.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetMeHandler handles GET /api/employees/me.
func (h *EmployeeHandler) GetMeHandler(c *gin.Context) {
	employeeID := c.GetString("employeeID")
	e, err := h.Service.GetByID(c.Request.Context(), employeeID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}
	c.JSON(http.StatusOK, e)
}

// UpdateFCMTokenHandler handles PUT /api/employees/fcm-token.
func (h *EmployeeHandler) UpdateFCMTokenHandler(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employeeID := c.GetString("employeeID")
	if err := h.Service.UpdateFCMToken(c.Request.Context(), employeeID, req.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device registered"})
}

// LogoutHandler handles POST /api/employees/logout.
func (h *EmployeeHandler) LogoutHandler(c *gin.Context) {
	employeeID := c.GetString("employeeID")
	if err := h.Service.RevokeToken(c.Request.Context(), employeeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
