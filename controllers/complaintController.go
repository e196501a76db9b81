package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"societypro-be/complaints"
	"societypro-be/store"
	"societypro-be/utils"
)

const (
	maxComplaintImages = 5
	maxImageSize       = 5 * 1024 * 1024 // 5MB per file
)

var (
	complaintSvc     *complaints.Service
	complaintSvcOnce sync.Once
)

func complaintService() *complaints.Service {
	complaintSvcOnce.Do(func() {
		resolver := &complaints.Resolver{
			Residents: store.NewResidentFinder(),
			Trials:    store.NewFreeTrialFinder(),
			Societies: store.NewSocietyFinder(),
		}
		complaintSvc = complaints.NewService(store.NewComplaintStore(), resolver, utils.NewCloudinaryClient())
	})
	return complaintSvc
}

// principalFromContext rebuilds the authenticated principal that
// AuthMiddleware stored on the request.
func principalFromContext(c *gin.Context) (complaints.Principal, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		utils.SendResponse(c, http.StatusUnauthorized, "User not authenticated", nil)
		return complaints.Principal{}, false
	}
	id, err := primitive.ObjectIDFromHex(userIDVal.(string))
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid user ID", nil)
		return complaints.Principal{}, false
	}
	roleVal, _ := c.Get("role")
	role, _ := roleVal.(string)
	trialVal, _ := c.Get("is_free_trial")
	isFreeTrial, _ := trialVal.(bool)

	return complaints.Principal{ID: id, Role: role, IsFreeTrial: isFreeTrial}, true
}

// collectImageFiles reads the "images" multipart files into memory,
// enforcing the count, size and type limits.
func collectImageFiles(c *gin.Context) ([]complaints.UploadFile, string) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, ""
	}
	headers := form.File["images"]
	if len(headers) == 0 {
		return nil, ""
	}
	if len(headers) > maxComplaintImages {
		return nil, "A complaint can have at most 5 images"
	}

	files := make([]complaints.UploadFile, 0, len(headers))
	for _, header := range headers {
		if header.Size > maxImageSize {
			return nil, "Each image must be 5MB or smaller"
		}
		if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
			return nil, "Only image files are allowed"
		}
		data, err := readMultipartFile(header)
		if err != nil {
			return nil, "Failed to read uploaded file"
		}
		files = append(files, complaints.UploadFile{Name: header.Filename, Data: data})
	}
	return files, ""
}

func readMultipartFile(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func respondComplaintError(c *gin.Context, err error) {
	var ve *complaints.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.SendResponse(c, http.StatusBadRequest, ve.Reason, nil)
	case errors.Is(err, complaints.ErrInvalidID):
		utils.SendResponse(c, http.StatusBadRequest, "Invalid complaint ID", nil)
	case errors.Is(err, complaints.ErrNotFound):
		utils.SendResponse(c, http.StatusNotFound, "Complaint not found", nil)
	case errors.Is(err, complaints.ErrForbidden):
		utils.SendResponse(c, http.StatusForbidden, "Access denied", nil)
	case errors.Is(err, complaints.ErrTrialExpired):
		utils.SendResponse(c, http.StatusForbidden, "Your free trial has ended. Please upgrade to create complaints.", nil)
	default:
		log.Println("Complaint handler error:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
	}
}

// CreateComplaint handles POST /api/complaints/create. Accepts multipart
// form data with up to 5 images.
func CreateComplaint(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}

	files, problem := collectImageFiles(c)
	if problem != "" {
		utils.SendResponse(c, http.StatusBadRequest, problem, nil)
		return
	}

	input := complaints.CreateInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Priority:    c.PostForm("priority"),
		Files:       files,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := complaintService().Create(ctx, principal, input)
	if err != nil {
		if errors.Is(err, complaints.ErrNotFound) {
			// The principal's own account record is gone.
			if principal.IsFreeTrial {
				utils.SendResponse(c, http.StatusNotFound, "Free trial user not found", nil)
			} else {
				utils.SendResponse(c, http.StatusNotFound, "Resident not found", nil)
			}
			return
		}
		respondComplaintError(c, err)
		return
	}

	utils.SendResponse(c, http.StatusCreated, "Complaint raised successfully", created)
}

// GetMyComplaints handles GET /api/complaints/my-complaints with optional
// status filter and offset pagination.
func GetMyComplaints(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}

	status := c.DefaultQuery("status", "all")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	items, pageInfo, err := complaintService().ListMine(ctx, principal, status, page, limit)
	if err != nil {
		respondComplaintError(c, err)
		return
	}

	userType := "resident"
	if principal.IsFreeTrial {
		userType = "free_trial"
	}

	utils.SendResponse(c, http.StatusOK, "Complaints retrieved successfully", gin.H{
		"complaints": items,
		"userType":   userType,
		"pagination": pageInfo,
	})
}

// GetComplaintByID handles GET /api/complaints/:id, access-policy gated.
func GetComplaintByID(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	view, err := complaintService().GetByID(ctx, principal, c.Param("id"))
	if err != nil {
		respondComplaintError(c, err)
		return
	}

	utils.SendResponse(c, http.StatusOK, "Complaint retrieved successfully", view)
}

// parseRemoveImageIds accepts either a JSON array of public ids or a single
// bare id, matching what clients actually send.
func parseRemoveImageIds(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err == nil {
		return ids
	}
	return []string{raw}
}

// UpdateComplaint handles PUT /api/complaints/:id/status. Owners may change
// content fields and images; admin-class callers may also change status,
// resolution notes and assignee. Image removals run before additions.
func UpdateComplaint(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}

	files, problem := collectImageFiles(c)
	if problem != "" {
		utils.SendResponse(c, http.StatusBadRequest, problem, nil)
		return
	}

	formPtr := func(key string) *string {
		if v, set := c.GetPostForm(key); set {
			return &v
		}
		return nil
	}

	input := complaints.UpdateInput{
		Title:           formPtr("title"),
		Description:     formPtr("description"),
		Category:        formPtr("category"),
		Priority:        formPtr("priority"),
		Status:          formPtr("status"),
		ResolutionNotes: formPtr("resolutionNotes"),
		AssignedTo:      formPtr("assignedTo"),
		Files: complaints.FileOps{
			Remove: parseRemoveImageIds(c.PostForm("removeImageIds")),
			Add:    files,
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	updated, err := complaintService().Update(ctx, principal, c.Param("id"), input)
	if err != nil {
		respondComplaintError(c, err)
		return
	}

	utils.SendResponse(c, http.StatusOK, "Complaint updated successfully", updated)
}

// DeleteComplaint handles DELETE /api/complaints/:id. Hard delete; the
// attachments are removed from object storage first, best effort.
func DeleteComplaint(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := complaintService().Delete(ctx, principal, c.Param("id")); err != nil {
		respondComplaintError(c, err)
		return
	}

	utils.SendResponse(c, http.StatusOK, "Complaint deleted successfully", nil)
}
