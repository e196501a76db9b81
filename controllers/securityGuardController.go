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

// CreateSecurityGuard handles POST /api/security-guard/create (community admin only).
func CreateSecurityGuard(c *gin.Context) {
	var input struct {
		Name       string `json:"name" binding:"required"`
		Email      string `json:"email" binding:"required,email"`
		Phone      string `json:"phone" binding:"required,len=10"`
		Password   string `json:"password" binding:"required,min=6"`
		EmployeeID string `json:"employeeId" binding:"required"`
		Society    string `json:"society" binding:"required"`
		Shift      string `json:"shift"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendResponse(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	societyID, err := primitive.ObjectIDFromHex(input.Society)
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid society ID", nil)
		return
	}

	shift := input.Shift
	if shift == "" {
		shift = string(models.ShiftGeneral)
	}
	if !models.ValidShift(shift) {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid shift. Must be one of: morning, evening, night, general", nil)
		return
	}

	adminIDVal, exists := c.Get("user_id")
	if !exists {
		utils.SendResponse(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}
	createdBy, err := primitive.ObjectIDFromHex(adminIDVal.(string))
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	guardCol := config.GetCollection("securityguards")

	count, err := guardCol.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		log.Println("Error checking existing guard:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}
	if count > 0 {
		utils.SendResponse(c, http.StatusBadRequest, "Email already registered", nil)
		return
	}

	// Employee IDs must be unique within a society, not globally.
	count, err = guardCol.CountDocuments(ctx, bson.M{"employeeId": input.EmployeeID, "society": societyID})
	if err != nil {
		log.Println("Error checking employee ID:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}
	if count > 0 {
		utils.SendResponse(c, http.StatusBadRequest, "Employee ID already exists in this society", nil)
		return
	}

	societyCount, err := config.GetCollection("societies").CountDocuments(ctx, bson.M{"_id": societyID, "isActive": true})
	if err != nil || societyCount == 0 {
		utils.SendResponse(c, http.StatusBadRequest, "Society not found", nil)
		return
	}

	guard := models.SecurityGuard{
		ID:         primitive.NewObjectID(),
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Password:   input.Password,
		EmployeeID: input.EmployeeID,
		Role:       "security_guard",
		Society:    societyID,
		CreatedBy:  createdBy,
		Shift:      models.GuardShift(shift),
		IsActive:   true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := guard.HashPassword(); err != nil {
		log.Println("Error hashing password:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	if _, err := guardCol.InsertOne(ctx, guard); err != nil {
		log.Println("Error inserting security guard:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	guard.Password = ""
	utils.SendResponse(c, http.StatusCreated, "Security guard created successfully", guard)
}

// SecurityGuardLogin handles POST /api/security-guard/guard-login
func SecurityGuardLogin(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendResponse(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var guard models.SecurityGuard
	err := config.GetCollection("securityguards").FindOne(ctx, bson.M{"email": input.Email}).Decode(&guard)
	if err != nil || !guard.ComparePassword(input.Password) {
		utils.SendResponse(c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}
	if !guard.IsActive {
		utils.SendResponse(c, http.StatusUnauthorized, "Account is deactivated. Please contact support.", nil)
		return
	}

	token, err := utils.GenerateToken(utils.TokenClaims{UserID: guard.ID.Hex(), Role: "security_guard"})
	if err != nil {
		log.Println("Error generating token:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	guard.Password = ""
	utils.SendResponse(c, http.StatusOK, "Login successful", gin.H{
		"user":  guard,
		"token": token,
	})
}

// GetAllSecurityGuards handles GET /api/security-guard with search,
// shift filter and pagination.
func GetAllSecurityGuards(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	search := c.Query("search")
	shift := c.Query("shift")
	society := c.Query("society")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := bson.M{"isActive": true}
	if shift != "" {
		if !models.ValidShift(shift) {
			utils.SendResponse(c, http.StatusBadRequest, "Invalid shift filter", nil)
			return
		}
		filter["shift"] = shift
	}
	if society != "" {
		societyID, err := primitive.ObjectIDFromHex(society)
		if err != nil {
			utils.SendResponse(c, http.StatusBadRequest, "Invalid society ID", nil)
			return
		}
		filter["society"] = societyID
	}
	if search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"email": bson.M{"$regex": search, "$options": "i"}},
			{"employeeId": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	col := config.GetCollection("securityguards")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	totalCount, err := col.CountDocuments(ctx, filter)
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to count security guards", nil)
		return
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, filter, findOptions)
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to retrieve security guards", nil)
		return
	}
	defer cursor.Close(ctx)

	var guards []models.SecurityGuard
	if err := cursor.All(ctx, &guards); err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to decode security guards", nil)
		return
	}
	for i := range guards {
		guards[i].Password = ""
	}

	utils.SendResponse(c, http.StatusOK, "Security guards retrieved successfully", gin.H{
		"guards":     guards,
		"pagination": complaints.NewPage(page, limit, totalCount),
	})
}

// GetSecurityGuardByID handles GET /api/security-guard/:id
func GetSecurityGuardByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid security guard ID", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var guard models.SecurityGuard
	err = config.GetCollection("securityguards").FindOne(ctx, bson.M{"_id": id, "isActive": true}).Decode(&guard)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendResponse(c, http.StatusNotFound, "Security guard not found", nil)
		} else {
			utils.SendResponse(c, http.StatusInternalServerError, "Failed to retrieve security guard", nil)
		}
		return
	}

	guard.Password = ""
	utils.SendResponse(c, http.StatusOK, "Security guard retrieved successfully", guard)
}

// UpdateSecurityGuard handles PUT /api/security-guard/:id (community admin only).
func UpdateSecurityGuard(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid security guard ID", nil)
		return
	}

	var input struct {
		Name  *string `json:"name,omitempty"`
		Phone *string `json:"phone,omitempty"`
		Shift *string `json:"shift,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendResponse(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		update["name"] = *input.Name
	}
	if input.Phone != nil {
		update["phone"] = *input.Phone
	}
	if input.Shift != nil {
		if !models.ValidShift(*input.Shift) {
			utils.SendResponse(c, http.StatusBadRequest, "Invalid shift. Must be one of: morning, evening, night, general", nil)
			return
		}
		update["shift"] = *input.Shift
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection("securityguards").UpdateOne(ctx,
		bson.M{"_id": id, "isActive": true}, bson.M{"$set": update})
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to update security guard", nil)
		return
	}
	if result.MatchedCount == 0 {
		utils.SendResponse(c, http.StatusNotFound, "Security guard not found", nil)
		return
	}

	utils.SendResponse(c, http.StatusOK, "Security guard updated successfully", nil)
}

// DeleteSecurityGuard handles DELETE /api/security-guard/:id as a soft delete.
func DeleteSecurityGuard(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid security guard ID", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection("securityguards").UpdateOne(ctx,
		bson.M{"_id": id, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}})
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to delete security guard", nil)
		return
	}
	if result.MatchedCount == 0 {
		utils.SendResponse(c, http.StatusNotFound, "Security guard not found", nil)
		return
	}

	utils.SendResponse(c, http.StatusOK, "Security guard deleted successfully", nil)
}

// GetSecurityGuardsBySociety handles GET /api/security-guard/society/:societyId
func GetSecurityGuardsBySociety(c *gin.Context) {
	societyID, err := primitive.ObjectIDFromHex(c.Param("societyId"))
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid society ID", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.GetCollection("securityguards").Find(ctx,
		bson.M{"society": societyID, "isActive": true},
		options.Find().SetSort(bson.D{{Key: "shift", Value: 1}, {Key: "name", Value: 1}}))
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to retrieve security guards", nil)
		return
	}
	defer cursor.Close(ctx)

	var guards []models.SecurityGuard
	if err := cursor.All(ctx, &guards); err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to decode security guards", nil)
		return
	}
	for i := range guards {
		guards[i].Password = ""
	}

	utils.SendResponse(c, http.StatusOK, "Security guards retrieved successfully", guards)
}

// GetSecurityGuardStats handles GET /api/security-guard/stats/overview
func GetSecurityGuardStats(c *gin.Context) {
	col := config.GetCollection("securityguards")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count := func(filter bson.M) int64 {
		n, err := col.CountDocuments(ctx, filter)
		if err != nil {
			return 0
		}
		return n
	}

	byShift := gin.H{}
	for _, s := range []models.GuardShift{models.ShiftMorning, models.ShiftEvening, models.ShiftNight, models.ShiftGeneral} {
		byShift[string(s)] = count(bson.M{"isActive": true, "shift": s})
	}

	utils.SendResponse(c, http.StatusOK, "Security guard statistics retrieved successfully", gin.H{
		"total":   count(bson.M{"isActive": true}),
		"byShift": byShift,
	})
}
