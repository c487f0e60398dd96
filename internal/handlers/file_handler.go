package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"filemanager/internal/middleware"
	"filemanager/internal/models"
	"filemanager/internal/services"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	files services.FileService
}

func NewFileHandler(files services.FileService) *FileHandler {
	return &FileHandler{files: files}
}

// @Summary      Upload a file
// @Tags         Files
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "File contents"
// @Security     BearerAuth
// @Success      200  {object}  models.Response
// @Failure      400  {object}  models.Response
// @Failure      401  {object}  models.Response
// @Router       /files/upload [post]
func (h *FileHandler) Upload(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	// exactly one part is consumed; anything after the first is ignored
	mr, err := c.Request.MultipartReader()
	if err != nil {
		respond(c, http.StatusBadRequest, "No file uploaded", nil)
		return
	}
	part, err := mr.NextPart()
	if err != nil {
		respond(c, http.StatusBadRequest, "No file uploaded", nil)
		return
	}
	defer part.Close()

	id, err := h.files.Upload(user.ID, part.FileName(), part.Header.Get("Content-Type"), part)
	if err != nil {
		log.Printf("[files][upload] userID=%d: %v", user.ID, err)
		respond(c, http.StatusBadRequest, "Upload failed", nil)
		return
	}

	respond(c, http.StatusOK, "File uploaded", gin.H{"id": id})
}

// @Summary      List files by id
// @Description  Pass [-1] (or an empty list) to list every file owned by the caller.
// @Tags         Files
// @Accept       json
// @Produce      json
// @Param        ids  body      models.GetFilesRequest  true  "File ids"
// @Security     BearerAuth
// @Success      200  {object}  models.Response
// @Failure      400  {object}  models.Response
// @Failure      401  {object}  models.Response
// @Router       /files/get [post]
func (h *FileHandler) GetFiles(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var req models.GetFilesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	files, err := h.files.List(user.ID, req.FileIDs)
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			// empty id-set result is soft: an empty list, not a failure
			respond(c, http.StatusOK, "Files not found", gin.H{"files": files})
			return
		}
		log.Printf("[files][get] userID=%d: %v", user.ID, err)
		respond(c, http.StatusBadRequest, "Error fetching files", nil)
		return
	}

	respond(c, http.StatusOK, "Files found", gin.H{"files": files})
}

// @Summary      Delete a file
// @Tags         Files
// @Produce      json
// @Param        file_id  query  int  true  "File id"
// @Security     BearerAuth
// @Success      200  {object}  models.Response
// @Failure      400  {object}  models.Response
// @Failure      401  {object}  models.Response
// @Failure      403  {object}  models.Response
// @Router       /files/delete [post]
func (h *FileHandler) DeleteFile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	fileID, err := strconv.Atoi(c.Query("file_id"))
	if err != nil {
		respond(c, http.StatusBadRequest, "Invalid file ID", nil)
		return
	}

	if err := h.files.Delete(user.ID, fileID); err != nil {
		switch {
		case errors.Is(err, services.ErrFileNotFound):
			respond(c, http.StatusBadRequest, "File not found", nil)
		case errors.Is(err, services.ErrForbidden):
			respond(c, http.StatusForbidden, "Forbidden", nil)
		default:
			log.Printf("[files][delete] id=%d: %v", fileID, err)
			respond(c, http.StatusBadRequest, "Error deleting file", nil)
		}
		return
	}

	respond(c, http.StatusOK, "File deleted", gin.H{"message": "File deleted successfully"})
}
