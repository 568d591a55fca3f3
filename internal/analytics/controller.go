package analytics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinebook/internal/shared/utils/response"
)

type Controller interface {
	GetDashboardAnalytics(c *gin.Context)
	GetMoviePerformance(c *gin.Context)
	GetShowOccupancy(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetDashboardAnalytics(c *gin.Context) {
	dashboard, err := ctrl.service.GetDashboardAnalytics()
	if err != nil {
		response.RespondJSON(c, false, http.StatusInternalServerError, "Failed to retrieve dashboard analytics", nil, err.Error())
		return
	}

	response.RespondJSON(c, true, http.StatusOK, "Dashboard analytics retrieved successfully", dashboard, nil)
}

func (ctrl *controller) GetMoviePerformance(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	performance, err := ctrl.service.GetMoviePerformance(limit)
	if err != nil {
		response.RespondJSON(c, false, http.StatusInternalServerError, "Failed to retrieve movie performance", nil, err.Error())
		return
	}

	response.RespondJSON(c, true, http.StatusOK, "Movie performance retrieved successfully", performance, nil)
}

func (ctrl *controller) GetShowOccupancy(c *gin.Context) {
	showID, err := uuid.Parse(c.Param("showId"))
	if err != nil {
		response.RespondJSON(c, false, http.StatusBadRequest, "Invalid show ID", nil, err.Error())
		return
	}

	occupancy, err := ctrl.service.GetShowOccupancy(showID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrShowNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, false, statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, true, http.StatusOK, "Show occupancy retrieved successfully", occupancy, nil)
}
