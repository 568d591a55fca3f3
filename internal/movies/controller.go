package movies

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinebook/internal/shared/utils/response"
)

type Controller interface {
	CreateMovie(c *gin.Context)
	GetMovie(c *gin.Context)
	GetAllMovies(c *gin.Context)
	DeleteMovie(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateMovie(c *gin.Context) {
	var req CreateMovieRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, false, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	movie, err := ctrl.service.CreateMovie(req)
	if err != nil {
		response.RespondJSON(c, false, http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, true, http.StatusCreated, "Movie created successfully", movie, nil)
}

func (ctrl *controller) GetMovie(c *gin.Context) {
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		response.RespondJSON(c, false, http.StatusBadRequest, "Invalid movie ID", nil, err.Error())
		return
	}

	movie, err := ctrl.service.GetMovieByID(movieID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrMovieNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, false, statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, true, http.StatusOK, "Movie retrieved successfully", movie, nil)
}

func (ctrl *controller) GetAllMovies(c *gin.Context) {
	var query MovieListQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, false, http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	movies, err := ctrl.service.GetAllMovies(query)
	if err != nil {
		response.RespondJSON(c, false, http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, true, http.StatusOK, "Movies retrieved successfully", movies, nil)
}

func (ctrl *controller) DeleteMovie(c *gin.Context) {
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		response.RespondJSON(c, false, http.StatusBadRequest, "Invalid movie ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteMovie(movieID); err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrMovieNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, false, statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, true, http.StatusOK, "Movie deleted successfully", nil, nil)
}
