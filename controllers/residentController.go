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

// residentWithSociety is a resident row with its society populated for
// admin listings.
type residentWithSociety struct {
	models.Resident
	Society gin.H `json:"society"`
}

func populateSociety(ctx context.Context, r models.Resident) residentWithSociety {
	row := residentWithSociety{Resident: r, Society: gin.H{"id": r.Society}}
	var society models.Society
	err := config.GetCollection("societies").FindOne(ctx, bson.M{"_id": r.Society}).Decode(&society)
	if err == nil {
		row.Society = gin.H{
			"id":      society.ID,
			"name":    society.Name,
			"address": society.Address,
			"city":    society.City,
		}
	}
	return row
}

// CreateResident handles POST /api/resident/create (community admin only).
func CreateResident(c *gin.Context) {
	var input struct {
		Name       string  `json:"name" binding:"required"`
		Email      string  `json:"email" binding:"required,email"`
		Phone      string  `json:"phone" binding:"required,len=10"`
		Password   string  `json:"password" binding:"required,min=6"`
		FlatNumber string  `json:"flatNumber" binding:"required"`
		Block      string  `json:"block"`
		Society    string  `json:"society" binding:"required"`
		IsOwner    *bool   `json:"isOwner"`
		Dues       float64 `json:"dues"`
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	residentCol := config.GetCollection("residents")

	count, err := residentCol.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		log.Println("Error checking existing resident:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}
	if count > 0 {
		utils.SendResponse(c, http.StatusBadRequest, "Email already registered", nil)
		return
	}

	societyCount, err := config.GetCollection("societies").CountDocuments(ctx, bson.M{"_id": societyID, "isActive": true})
	if err != nil || societyCount == 0 {
		utils.SendResponse(c, http.StatusBadRequest, "Society not found", nil)
		return
	}

	var createdBy *primitive.ObjectID
	if adminID, exists := c.Get("user_id"); exists {
		if objID, err := primitive.ObjectIDFromHex(adminID.(string)); err == nil {
			createdBy = &objID
		}
	}

	isOwner := true
	if input.IsOwner != nil {
		isOwner = *input.IsOwner
	}

	resident := models.Resident{
		ID:             primitive.NewObjectID(),
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Password:       input.Password,
		FlatNumber:     input.FlatNumber,
		Block:          input.Block,
		Role:           "resident",
		Society:        societyID,
		CommunityAdmin: createdBy,
		Dues:           input.Dues,
		IsOwner:        isOwner,
		IsActive:       true,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := resident.HashPassword(); err != nil {
		log.Println("Error hashing password:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	if _, err := residentCol.InsertOne(ctx, resident); err != nil {
		log.Println("Error inserting resident:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	resident.Password = ""
	utils.SendResponse(c, http.StatusCreated, "Resident created successfully", resident)
}

// ResidentLogin handles POST /api/resident/resident-login
func ResidentLogin(c *gin.Context) {
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

	var resident models.Resident
	err := config.GetCollection("residents").FindOne(ctx, bson.M{"email": input.Email}).Decode(&resident)
	if err != nil || !resident.ComparePassword(input.Password) {
		utils.SendResponse(c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}
	if !resident.IsActive {
		utils.SendResponse(c, http.StatusUnauthorized, "Account is deactivated. Please contact support.", nil)
		return
	}

	token, err := utils.GenerateToken(utils.TokenClaims{UserID: resident.ID.Hex(), Role: "resident"})
	if err != nil {
		log.Println("Error generating token:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	resident.Password = ""
	utils.SendResponse(c, http.StatusOK, "Login successful", gin.H{
		"user":  populateSociety(ctx, resident),
		"token": token,
	})
}

// GetMyProfile handles GET /api/resident/profile/me. It serves both regular
// residents and free trial principals, shaping the trial account into the
// resident profile the dashboard expects.
func GetMyProfile(c *gin.Context) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		utils.SendResponse(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}
	objID, err := primitive.ObjectIDFromHex(userIDVal.(string))
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}
	trialVal, _ := c.Get("is_free_trial")
	isFreeTrial, _ := trialVal.(bool)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if isFreeTrial {
		var trial models.FreeTrialUser
		err := config.GetCollection("freetrialusers").FindOne(ctx, bson.M{"_id": objID}).Decode(&trial)
		if err != nil {
			utils.SendResponse(c, http.StatusNotFound, "User not found", nil)
			return
		}
		utils.SendResponse(c, http.StatusOK, "Profile retrieved successfully", gin.H{
			"id":          trial.ID,
			"name":        trial.FullName,
			"email":       trial.Email,
			"phone":       trial.Phone,
			"flatNumber":  models.FlatNumberSentinel,
			"block":       "",
			"role":        "resident",
			"isOwner":     true,
			"isActive":    trial.IsActive,
			"isFreeTrial": true,
			"society": gin.H{
				"name": trial.SocietyName,
				"city": trial.City,
			},
			"trialEndsAt":        trial.TrialEndsAt,
			"trialDaysRemaining": trial.TrialDaysRemaining(),
			"emailVerified":      trial.EmailVerified,
		})
		return
	}

	var resident models.Resident
	err = config.GetCollection("residents").FindOne(ctx, bson.M{"_id": objID}).Decode(&resident)
	if err != nil {
		utils.SendResponse(c, http.StatusNotFound, "User not found", nil)
		return
	}
	resident.Password = ""
	utils.SendResponse(c, http.StatusOK, "Profile retrieved successfully", populateSociety(ctx, resident))
}

// GetAllResidents handles GET /api/resident with search and pagination
// (community admin only).
func GetAllResidents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	search := c.Query("search")
	society := c.Query("society")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := bson.M{"isActive": true}
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
			{"phone": bson.M{"$regex": search, "$options": "i"}},
			{"flatNumber": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	col := config.GetCollection("residents")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	totalCount, err := col.CountDocuments(ctx, filter)
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to count residents", nil)
		return
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, filter, findOptions)
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to retrieve residents", nil)
		return
	}
	defer cursor.Close(ctx)

	var residents []models.Resident
	if err := cursor.All(ctx, &residents); err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to decode residents", nil)
		return
	}

	rows := make([]residentWithSociety, 0, len(residents))
	for _, r := range residents {
		r.Password = ""
		rows = append(rows, populateSociety(ctx, r))
	}

	utils.SendResponse(c, http.StatusOK, "Residents retrieved successfully", gin.H{
		"residents":  rows,
		"pagination": complaints.NewPage(page, limit, totalCount),
	})
}

// GetResidentByID handles GET /api/resident/:id
func GetResidentByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid resident ID", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var resident models.Resident
	err = config.GetCollection("residents").FindOne(ctx, bson.M{"_id": id, "isActive": true}).Decode(&resident)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendResponse(c, http.StatusNotFound, "Resident not found", nil)
		} else {
			utils.SendResponse(c, http.StatusInternalServerError, "Failed to retrieve resident", nil)
		}
		return
	}

	resident.Password = ""
	utils.SendResponse(c, http.StatusOK, "Resident retrieved successfully", populateSociety(ctx, resident))
}

// UpdateResident handles PUT /api/resident/:id. Password and role are
// deliberately not updatable here.
func UpdateResident(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid resident ID", nil)
		return
	}

	var input struct {
		Name       *string  `json:"name,omitempty"`
		Phone      *string  `json:"phone,omitempty"`
		FlatNumber *string  `json:"flatNumber,omitempty"`
		Block      *string  `json:"block,omitempty"`
		Dues       *float64 `json:"dues,omitempty"`
		IsOwner    *bool    `json:"isOwner,omitempty"`
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
	if input.FlatNumber != nil {
		update["flatNumber"] = *input.FlatNumber
	}
	if input.Block != nil {
		update["block"] = *input.Block
	}
	if input.Dues != nil {
		update["dues"] = *input.Dues
	}
	if input.IsOwner != nil {
		update["isOwner"] = *input.IsOwner
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection("residents").UpdateOne(ctx,
		bson.M{"_id": id, "isActive": true}, bson.M{"$set": update})
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to update resident", nil)
		return
	}
	if result.MatchedCount == 0 {
		utils.SendResponse(c, http.StatusNotFound, "Resident not found", nil)
		return
	}

	utils.SendResponse(c, http.StatusOK, "Resident updated successfully", nil)
}

// DeleteResident handles DELETE /api/resident/:id as a soft delete.
func DeleteResident(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid resident ID", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection("residents").UpdateOne(ctx,
		bson.M{"_id": id, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}})
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to delete resident", nil)
		return
	}
	if result.MatchedCount == 0 {
		utils.SendResponse(c, http.StatusNotFound, "Resident not found", nil)
		return
	}

	utils.SendResponse(c, http.StatusOK, "Resident deleted successfully", nil)
}

// GetResidentsBySociety handles GET /api/resident/society/:societyId
func GetResidentsBySociety(c *gin.Context) {
	societyID, err := primitive.ObjectIDFromHex(c.Param("societyId"))
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid society ID", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.GetCollection("residents").Find(ctx,
		bson.M{"society": societyID, "isActive": true},
		options.Find().SetSort(bson.D{{Key: "flatNumber", Value: 1}}))
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to retrieve residents", nil)
		return
	}
	defer cursor.Close(ctx)

	var residents []models.Resident
	if err := cursor.All(ctx, &residents); err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to decode residents", nil)
		return
	}
	for i := range residents {
		residents[i].Password = ""
	}

	utils.SendResponse(c, http.StatusOK, "Residents retrieved successfully", residents)
}

// GetResidentStats handles GET /api/resident/stats/overview
func GetResidentStats(c *gin.Context) {
	col := config.GetCollection("residents")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count := func(filter bson.M) int64 {
		n, err := col.CountDocuments(ctx, filter)
		if err != nil {
			return 0
		}
		return n
	}

	utils.SendResponse(c, http.StatusOK, "Resident statistics retrieved successfully", gin.H{
		"total":   count(bson.M{"isActive": true}),
		"owners":  count(bson.M{"isActive": true, "isOwner": true}),
		"tenants": count(bson.M{"isActive": true, "isOwner": false}),
	})
}
