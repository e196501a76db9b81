package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"societypro-be/complaints"
	"societypro-be/config"
	"societypro-be/models"
	"societypro-be/utils"
)

// CreateSociety handles POST /api/societies/create (super admin only).
func CreateSociety(c *gin.Context) {
	var input struct {
		Name          string   `json:"name" binding:"required,max=100"`
		Address       string   `json:"address" binding:"required"`
		City          string   `json:"city" binding:"required"`
		State         string   `json:"state" binding:"required"`
		Pincode       string   `json:"pincode" binding:"required,len=6"`
		TotalFlats    int      `json:"totalFlats" binding:"required,min=1"`
		ContactPerson string   `json:"contactPerson" binding:"required"`
		ContactEmail  string   `json:"contactEmail" binding:"required,email"`
		ContactPhone  string   `json:"contactPhone" binding:"required,len=10"`
		Amenities     []string `json:"amenities"`
		Status        string   `json:"status"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendResponse(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	userID, _ := c.Get("user_id")
	createdBy, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	col := config.GetCollection("societies")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Uniqueness among active societies: (name, city), contact email, phone.
	count, err := col.CountDocuments(ctx, bson.M{"name": input.Name, "city": input.City, "isActive": true})
	if err != nil {
		log.Println("Error checking existing society:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}
	if count > 0 {
		utils.SendResponse(c, http.StatusBadRequest, "A society with this name already exists in the same city", nil)
		return
	}
	count, _ = col.CountDocuments(ctx, bson.M{"contactEmail": input.ContactEmail, "isActive": true})
	if count > 0 {
		utils.SendResponse(c, http.StatusBadRequest, "A society with this contact email already exists", nil)
		return
	}
	count, _ = col.CountDocuments(ctx, bson.M{"contactPhone": input.ContactPhone, "isActive": true})
	if count > 0 {
		utils.SendResponse(c, http.StatusBadRequest, "A society with this contact phone already exists", nil)
		return
	}

	status := models.SocietyStatus(input.Status)
	switch status {
	case models.SocietyActive, models.SocietyInactive, models.SocietyPending:
	case "":
		status = models.SocietyActive
	default:
		utils.SendResponse(c, http.StatusBadRequest, "Invalid status", nil)
		return
	}
	amenities := input.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	society := models.Society{
		ID:            primitive.NewObjectID(),
		Name:          input.Name,
		Address:       input.Address,
		City:          input.City,
		State:         input.State,
		Pincode:       input.Pincode,
		TotalFlats:    input.TotalFlats,
		ContactPerson: input.ContactPerson,
		ContactEmail:  input.ContactEmail,
		ContactPhone:  input.ContactPhone,
		Amenities:     amenities,
		Status:        status,
		CreatedBy:     createdBy,
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if _, err := col.InsertOne(ctx, society); err != nil {
		log.Println("Error inserting society:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	utils.SendResponse(c, http.StatusCreated, "Society created successfully", society)
}

// GetAllSocieties handles GET /api/societies with search, status filter and
// pagination.
func GetAllSocieties(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	search := c.Query("search")
	status := c.Query("status")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := bson.M{"isActive": true}
	if search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"city": bson.M{"$regex": search, "$options": "i"}},
			{"contactPerson": bson.M{"$regex": search, "$options": "i"}},
			{"contactEmail": bson.M{"$regex": search, "$options": "i"}},
		}
	}
	if status != "" {
		filter["status"] = status
	}

	col := config.GetCollection("societies")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	totalCount, err := col.CountDocuments(ctx, filter)
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to count societies", nil)
		return
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, filter, findOptions)
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to retrieve societies", nil)
		return
	}
	defer cursor.Close(ctx)

	var societies []models.Society
	if err := cursor.All(ctx, &societies); err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to decode societies", nil)
		return
	}

	utils.SendResponse(c, http.StatusOK, "Societies retrieved successfully", gin.H{
		"societies":  societies,
		"pagination": complaints.NewPage(page, limit, totalCount),
	})
}

// GetSocietyByID handles GET /api/societies/:id
func GetSocietyByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid society ID", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var society models.Society
	err = config.GetCollection("societies").FindOne(ctx, bson.M{"_id": id, "isActive": true}).Decode(&society)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendResponse(c, http.StatusNotFound, "Society not found", nil)
		} else {
			utils.SendResponse(c, http.StatusInternalServerError, "Failed to retrieve society", nil)
		}
		return
	}

	utils.SendResponse(c, http.StatusOK, "Society retrieved successfully", society)
}

// UpdateSociety handles PUT /api/societies/:id with an explicit field
// allow-list.
func UpdateSociety(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid society ID", nil)
		return
	}

	var input struct {
		Name          *string   `json:"name,omitempty"`
		Address       *string   `json:"address,omitempty"`
		City          *string   `json:"city,omitempty"`
		State         *string   `json:"state,omitempty"`
		Pincode       *string   `json:"pincode,omitempty"`
		TotalFlats    *int      `json:"totalFlats,omitempty"`
		ContactPerson *string   `json:"contactPerson,omitempty"`
		ContactEmail  *string   `json:"contactEmail,omitempty"`
		ContactPhone  *string   `json:"contactPhone,omitempty"`
		Amenities     *[]string `json:"amenities,omitempty"`
		Status        *string   `json:"status,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendResponse(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		update["name"] = *input.Name
	}
	if input.Address != nil {
		update["address"] = *input.Address
	}
	if input.City != nil {
		update["city"] = *input.City
	}
	if input.State != nil {
		update["state"] = *input.State
	}
	if input.Pincode != nil {
		update["pincode"] = *input.Pincode
	}
	if input.TotalFlats != nil {
		update["totalFlats"] = *input.TotalFlats
	}
	if input.ContactPerson != nil {
		update["contactPerson"] = *input.ContactPerson
	}
	if input.ContactEmail != nil {
		update["contactEmail"] = *input.ContactEmail
	}
	if input.ContactPhone != nil {
		update["contactPhone"] = *input.ContactPhone
	}
	if input.Amenities != nil {
		update["amenities"] = *input.Amenities
	}
	if input.Status != nil {
		switch models.SocietyStatus(*input.Status) {
		case models.SocietyActive, models.SocietyInactive, models.SocietyPending:
			update["status"] = *input.Status
		default:
			utils.SendResponse(c, http.StatusBadRequest, "Invalid status", nil)
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection("societies").UpdateOne(ctx,
		bson.M{"_id": id, "isActive": true}, bson.M{"$set": update})
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to update society", nil)
		return
	}
	if result.MatchedCount == 0 {
		utils.SendResponse(c, http.StatusNotFound, "Society not found", nil)
		return
	}

	utils.SendResponse(c, http.StatusOK, "Society updated successfully", nil)
}

// DeleteSociety handles DELETE /api/societies/:id as a soft delete; the
// record is kept for audit history.
func DeleteSociety(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid society ID", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection("societies").UpdateOne(ctx,
		bson.M{"_id": id, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}})
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to delete society", nil)
		return
	}
	if result.MatchedCount == 0 {
		utils.SendResponse(c, http.StatusNotFound, "Society not found", nil)
		return
	}

	utils.SendResponse(c, http.StatusOK, "Society deleted successfully", nil)
}

// GetSocietyStats handles GET /api/societies/stats/overview
func GetSocietyStats(c *gin.Context) {
	col := config.GetCollection("societies")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count := func(filter bson.M) int64 {
		n, err := col.CountDocuments(ctx, filter)
		if err != nil {
			return 0
		}
		return n
	}

	utils.SendResponse(c, http.StatusOK, "Society statistics retrieved successfully", gin.H{
		"total":    count(bson.M{"isActive": true}),
		"active":   count(bson.M{"isActive": true, "status": models.SocietyActive}),
		"inactive": count(bson.M{"isActive": true, "status": models.SocietyInactive}),
		"pending":  count(bson.M{"isActive": true, "status": models.SocietyPending}),
	})
}
