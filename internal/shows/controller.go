package shows

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinebook/internal/movies"
	"cinebook/internal/shared/utils/response"
)

type Controller interface {
	CreateShow(c *gin.Context)
	GetShow(c *gin.Context)
	GetShowsByMovie(c *gin.Context)
	GetUpcomingShows(c *gin.Context)
	GetOccupiedSeats(c *gin.Context)
	DeleteShow(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateShow(c *gin.Context) {
	var req CreateShowRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, false, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	show, err := ctrl.service.CreateShow(req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if err == movies.ErrMovieNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, false, statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, true, http.StatusCreated, "Show created successfully", show, nil)
}

func (ctrl *controller) DeleteShow(c *gin.Context) {
	showID, err := uuid.Parse(c.Param("showId"))
	if err != nil {
		response.RespondJSON(c, false, http.StatusBadRequest, "Invalid show ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteShow(showID); err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrShowNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, false, statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, true, http.StatusOK, "Show deleted successfully", nil, nil)
}

func (ctrl *controller) GetShow(c *gin.Context) {
	showID, err := uuid.Parse(c.Param("showId"))
	if err != nil {
		response.RespondJSON(c, false, http.StatusBadRequest, "Invalid show ID", nil, err.Error())
		return
	}

	show, err := ctrl.service.GetShowByID(showID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrShowNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, false, statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, true, http.StatusOK, "Show retrieved successfully", show, nil)
}

func (ctrl *controller) GetShowsByMovie(c *gin.Context) {
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		response.RespondJSON(c, false, http.StatusBadRequest, "Invalid movie ID", nil, err.Error())
		return
	}

	shows, err := ctrl.service.GetShowsByMovie(movieID)
	if err != nil {
		response.RespondJSON(c, false, http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, true, http.StatusOK, "Shows retrieved successfully", shows, nil)
}

func (ctrl *controller) GetUpcomingShows(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	shows, err := ctrl.service.GetUpcomingShows(limit)
	if err != nil {
		response.RespondJSON(c, false, http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, true, http.StatusOK, "Upcoming shows retrieved successfully", shows, nil)
}

func (ctrl *controller) GetOccupiedSeats(c *gin.Context) {
	showID, err := uuid.Parse(c.Param("showId"))
	if err != nil {
		response.RespondJSON(c, false, http.StatusBadRequest, "Invalid show ID", nil, err.Error())
		return
	}

	seats, err := ctrl.service.GetOccupiedSeats(c.Request.Context(), showID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrShowNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, false, statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, true, http.StatusOK, "Occupied seats retrieved successfully", seats, nil)
}
