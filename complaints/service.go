package complaints

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"societypro-be/models"
)

// Service owns the complaint lifecycle: creation, self-service listing,
// reads, allow-listed mutation and hard deletion with attachment cleanup.
type Service struct {
	Complaints  ComplaintStore
	Resolver    *Resolver
	Attachments *AttachmentManager
}

func NewService(store ComplaintStore, resolver *Resolver, storage ObjectStorage) *Service {
	return &Service{
		Complaints:  store,
		Resolver:    resolver,
		Attachments: &AttachmentManager{Storage: storage},
	}
}

// ComplaintView is a complaint with its submitter and society resolved for
// the response body.
type ComplaintView struct {
	models.Complaint
	RaisedBy SubmitterView `json:"raisedBy"`
	Society  *SocietyView  `json:"society,omitempty"`
}

// ListItem is a complaint row in the self-service list. Only the society is
// resolved there; submitter details are the caller's own.
type ListItem struct {
	models.Complaint
	Society *SocietyView `json:"society,omitempty"`
}

// Page describes the window of a paginated list.
type Page struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
}

// NewPage computes the page window for total records at the given page size.
func NewPage(page, limit int, total int64) Page {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Page{CurrentPage: page, TotalPages: totalPages, TotalCount: total}
}

// CreateInput is the payload for raising a complaint. The submitter type is
// taken from the authenticated principal, never from the client.
type CreateInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
	Files       []UploadFile
}

// FileOps carries image changes in an update request. Remove is processed
// before Add, so one request can replace images.
type FileOps struct {
	Remove []string
	Add    []UploadFile
}

// UpdateInput holds every field a client may attempt to set. Which of them
// actually apply is decided per role by the allow-list in Update; fields
// outside the caller's allow-list are silently ignored.
type UpdateInput struct {
	Title           *string
	Description     *string
	Category        *string
	Priority        *string
	Status          *string
	ResolutionNotes *string
	AssignedTo      *string
	Files           FileOps
}

// Create raises a new complaint for the authenticated principal. Exactly one
// of society reference / society snapshot is stored, chosen by the
// principal's trial flag. If the record write fails after images were
// uploaded, the uploads are deleted before the error surfaces.
func (s *Service) Create(ctx context.Context, p Principal, in CreateInput) (*ComplaintView, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" || in.Category == "" {
		return nil, validationErr("Title, description and category are required")
	}
	if !models.ValidCategory(in.Category) {
		return nil, validationErr("Invalid category")
	}
	priority := in.Priority
	if priority == "" {
		priority = string(models.PriorityMedium)
	}
	if !models.ValidPriority(priority) {
		return nil, validationErr("Invalid priority")
	}

	complaint := &models.Complaint{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: description,
		Category:    models.ComplaintCategory(in.Category),
		Priority:    models.ComplaintPriority(priority),
		Status:      models.StatusPending,
		Images:      []models.ComplaintImage{},
		RaisedBy:    p.ID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	var submitter SubmitterView

	if p.IsFreeTrial {
		trial, err := s.Resolver.Trials.FindFreeTrialByID(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if trial == nil {
			return nil, ErrNotFound
		}
		if !trial.IsTrialActive() {
			return nil, ErrTrialExpired
		}
		complaint.RaisedByType = models.RaisedByFreeTrial
		complaint.SocietyInfo = &models.SocietySnapshot{
			Name: trial.SocietyName,
			City: trial.City,
			Type: trial.SocietyType,
		}
		submitter = SubmitterView{
			ID:         trial.ID,
			Name:       trial.FullName,
			FlatNumber: models.FlatNumberSentinel,
			Phone:      trial.Phone,
		}
	} else {
		resident, err := s.Resolver.Residents.FindResidentByID(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if resident == nil {
			return nil, ErrNotFound
		}
		complaint.RaisedByType = models.RaisedByResident
		society := resident.Society
		complaint.Society = &society
		submitter = SubmitterView{
			ID:         resident.ID,
			Name:       resident.Name,
			FlatNumber: resident.FlatNumber,
			Phone:      resident.Phone,
		}
	}

	images, err := s.Attachments.Attach(ctx, in.Files)
	if err != nil {
		return nil, err
	}
	if images != nil {
		complaint.Images = images
	}

	if err := s.Complaints.Insert(ctx, complaint); err != nil {
		// The record never made it; the uploads must not outlive it.
		uploaded := make([]string, 0, len(images))
		for _, img := range images {
			uploaded = append(uploaded, img.PublicID)
		}
		s.Attachments.Detach(ctx, uploaded)
		return nil, err
	}

	return &ComplaintView{
		Complaint: *complaint,
		RaisedBy:  submitter,
		Society:   s.Resolver.ResolveSociety(ctx, complaint),
	}, nil
}

// ListMine returns the principal's own complaints, newest first, with an
// optional exact status filter ("all" or empty disables it).
func (s *Service) ListMine(ctx context.Context, p Principal, status string, page, limit int) ([]ListItem, Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	if status == "all" {
		status = ""
	}
	if status != "" && !models.ValidStatus(status) {
		return nil, Page{}, validationErr("Invalid status filter")
	}

	skip := int64((page - 1) * limit)
	found, err := s.Complaints.FindByRaisedBy(ctx, p.ID, status, skip, int64(limit))
	if err != nil {
		return nil, Page{}, err
	}
	total, err := s.Complaints.CountByRaisedBy(ctx, p.ID, status)
	if err != nil {
		return nil, Page{}, err
	}

	items := make([]ListItem, 0, len(found))
	for i := range found {
		c := found[i]
		items = append(items, ListItem{
			Complaint: c,
			Society:   s.Resolver.ResolveSociety(ctx, &c),
		})
	}
	return items, NewPage(page, limit, total), nil
}

// GetByID fetches one complaint, enforcing the access policy, and resolves
// the submitter and society views.
func (s *Service) GetByID(ctx context.Context, p Principal, idHex string) (*ComplaintView, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, ErrInvalidID
	}

	complaint, err := s.Complaints.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccess(p, complaint, ActionRead) {
		return nil, ErrForbidden
	}

	submitter, err := s.Resolver.ResolveSubmitter(ctx, complaint.RaisedBy, complaint.RaisedByType)
	if err != nil {
		return nil, err
	}
	return &ComplaintView{
		Complaint: *complaint,
		RaisedBy:  submitter,
		Society:   s.Resolver.ResolveSociety(ctx, complaint),
	}, nil
}

// Update applies an allow-listed mutation. Owners may change title,
// description, category, priority and images; admin-class principals may
// additionally set status, resolution notes and assignee. Moving status to
// resolved stamps ResolvedAt once; re-sending resolved leaves it untouched.
func (s *Service) Update(ctx context.Context, p Principal, idHex string, in UpdateInput) (*models.Complaint, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, ErrInvalidID
	}

	complaint, err := s.Complaints.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccess(p, complaint, ActionUpdate) {
		return nil, ErrForbidden
	}

	// Removals before additions, so a single request can replace images.
	if len(in.Files.Remove) > 0 {
		s.Attachments.Detach(ctx, in.Files.Remove)
		complaint.RemoveImages(in.Files.Remove)
	}
	if len(in.Files.Add) > 0 {
		added, err := s.Attachments.Attach(ctx, in.Files.Add)
		if err != nil {
			return nil, err
		}
		complaint.Images = append(complaint.Images, added...)
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, validationErr("Title cannot be empty")
		}
		complaint.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, validationErr("Description cannot be empty")
		}
		complaint.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		if !models.ValidCategory(*in.Category) {
			return nil, validationErr("Invalid category")
		}
		complaint.Category = models.ComplaintCategory(*in.Category)
	}
	if in.Priority != nil {
		if !models.ValidPriority(*in.Priority) {
			return nil, validationErr("Invalid priority")
		}
		complaint.Priority = models.ComplaintPriority(*in.Priority)
	}

	// Admin-only fields; anything here from a resident-class caller is
	// ignored rather than rejected.
	if AdminRole(p.Role) {
		if in.Status != nil {
			if !models.ValidStatus(*in.Status) {
				return nil, validationErr("Invalid status")
			}
			complaint.Status = models.ComplaintStatus(*in.Status)
			if complaint.Status == models.StatusResolved && complaint.ResolvedAt == nil {
				now := time.Now()
				complaint.ResolvedAt = &now
			}
		}
		if in.ResolutionNotes != nil {
			complaint.ResolutionNotes = *in.ResolutionNotes
		}
		if in.AssignedTo != nil {
			if *in.AssignedTo == "" {
				complaint.AssignedTo = nil
			} else {
				assignee, err := primitive.ObjectIDFromHex(*in.AssignedTo)
				if err != nil {
					return nil, ErrInvalidID
				}
				complaint.AssignedTo = &assignee
			}
		}
	}

	complaint.UpdatedAt = time.Now()
	if err := s.Complaints.Replace(ctx, complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

// Delete removes the complaint permanently after deleting its attachments
// from storage. Attachment deletion is best effort; the record removal is
// not blocked by storage failures.
func (s *Service) Delete(ctx context.Context, p Principal, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return ErrInvalidID
	}

	complaint, err := s.Complaints.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanAccess(p, complaint, ActionDelete) {
		return ErrForbidden
	}

	publicIDs := make([]string, 0, len(complaint.Images))
	for _, img := range complaint.Images {
		publicIDs = append(publicIDs, img.PublicID)
	}
	s.Attachments.Detach(ctx, publicIDs)

	return s.Complaints.Delete(ctx, id)
}
