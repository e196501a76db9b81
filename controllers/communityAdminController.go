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

func validPermissions(perms []string) bool {
	for _, p := range perms {
		found := false
		for _, valid := range models.ValidAdminPermissions {
			if p == valid {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// CreateCommunityAdmin handles POST /api/community-admin/create (super admin only).
func CreateCommunityAdmin(c *gin.Context) {
	var input struct {
		Name        string   `json:"name" binding:"required"`
		Email       string   `json:"email" binding:"required,email"`
		Phone       string   `json:"phone" binding:"required,len=10"`
		Password    string   `json:"password" binding:"required,min=6"`
		Society     string   `json:"society" binding:"required"`
		Permissions []string `json:"permissions"`
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
	if len(input.Permissions) > 0 && !validPermissions(input.Permissions) {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid permission in list", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adminCol := config.GetCollection("communityadmins")

	count, err := adminCol.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		log.Println("Error checking existing admin:", err)
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
	if superID, exists := c.Get("user_id"); exists {
		if objID, err := primitive.ObjectIDFromHex(superID.(string)); err == nil {
			createdBy = &objID
		}
	}

	permissions := input.Permissions
	if len(permissions) == 0 {
		permissions = models.DefaultAdminPermissions
	}

	admin := models.CommunityAdmin{
		ID:          primitive.NewObjectID(),
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Password:    input.Password,
		Role:        "community_admin",
		Society:     societyID,
		CreatedBy:   createdBy,
		Permissions: permissions,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := admin.HashPassword(); err != nil {
		log.Println("Error hashing password:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	if _, err := adminCol.InsertOne(ctx, admin); err != nil {
		log.Println("Error inserting community admin:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	admin.Password = ""
	utils.SendResponse(c, http.StatusCreated, "Community admin created successfully", admin)
}

// CommunityAdminLogin handles POST /api/community-admin/admin-login
func CommunityAdminLogin(c *gin.Context) {
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

	var admin models.CommunityAdmin
	err := config.GetCollection("communityadmins").FindOne(ctx, bson.M{"email": input.Email}).Decode(&admin)
	if err != nil || !admin.ComparePassword(input.Password) {
		utils.SendResponse(c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}
	if !admin.IsActive {
		utils.SendResponse(c, http.StatusUnauthorized, "Account is deactivated. Please contact support.", nil)
		return
	}

	token, err := utils.GenerateToken(utils.TokenClaims{UserID: admin.ID.Hex(), Role: "community_admin"})
	if err != nil {
		log.Println("Error generating token:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	admin.Password = ""
	utils.SendResponse(c, http.StatusOK, "Login successful", gin.H{
		"user":  admin,
		"token": token,
	})
}

// GetAllCommunityAdmins handles GET /api/community-admin (super admin only).
func GetAllCommunityAdmins(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	search := c.Query("search")

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
			{"email": bson.M{"$regex": search, "$options": "i"}},
			{"phone": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	col := config.GetCollection("communityadmins")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	totalCount, err := col.CountDocuments(ctx, filter)
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to count community admins", nil)
		return
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, filter, findOptions)
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to retrieve community admins", nil)
		return
	}
	defer cursor.Close(ctx)

	var admins []models.CommunityAdmin
	if err := cursor.All(ctx, &admins); err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to decode community admins", nil)
		return
	}
	for i := range admins {
		admins[i].Password = ""
	}

	utils.SendResponse(c, http.StatusOK, "Community admins retrieved successfully", gin.H{
		"admins":     admins,
		"pagination": complaints.NewPage(page, limit, totalCount),
	})
}

// GetCommunityAdminByID handles GET /api/community-admin/:id
func GetCommunityAdminByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid community admin ID", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var admin models.CommunityAdmin
	err = config.GetCollection("communityadmins").FindOne(ctx, bson.M{"_id": id, "isActive": true}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendResponse(c, http.StatusNotFound, "Community admin not found", nil)
		} else {
			utils.SendResponse(c, http.StatusInternalServerError, "Failed to retrieve community admin", nil)
		}
		return
	}

	admin.Password = ""
	utils.SendResponse(c, http.StatusOK, "Community admin retrieved successfully", admin)
}

// UpdateCommunityAdmin handles PUT /api/community-admin/:id (super admin only).
func UpdateCommunityAdmin(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid community admin ID", nil)
		return
	}

	var input struct {
		Name        *string  `json:"name,omitempty"`
		Phone       *string  `json:"phone,omitempty"`
		Permissions []string `json:"permissions,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendResponse(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if len(input.Permissions) > 0 && !validPermissions(input.Permissions) {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid permission in list", nil)
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		update["name"] = *input.Name
	}
	if input.Phone != nil {
		update["phone"] = *input.Phone
	}
	if len(input.Permissions) > 0 {
		update["permissions"] = input.Permissions
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection("communityadmins").UpdateOne(ctx,
		bson.M{"_id": id, "isActive": true}, bson.M{"$set": update})
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to update community admin", nil)
		return
	}
	if result.MatchedCount == 0 {
		utils.SendResponse(c, http.StatusNotFound, "Community admin not found", nil)
		return
	}

	utils.SendResponse(c, http.StatusOK, "Community admin updated successfully", nil)
}

// DeleteCommunityAdmin handles DELETE /api/community-admin/:id as a soft
// delete (super admin only).
func DeleteCommunityAdmin(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid community admin ID", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection("communityadmins").UpdateOne(ctx,
		bson.M{"_id": id, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}})
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to delete community admin", nil)
		return
	}
	if result.MatchedCount == 0 {
		utils.SendResponse(c, http.StatusNotFound, "Community admin not found", nil)
		return
	}

	utils.SendResponse(c, http.StatusOK, "Community admin deleted successfully", nil)
}

// GetCommunityAdminsBySociety handles GET /api/community-admin/society/:societyId
func GetCommunityAdminsBySociety(c *gin.Context) {
	societyID, err := primitive.ObjectIDFromHex(c.Param("societyId"))
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid society ID", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.GetCollection("communityadmins").Find(ctx,
		bson.M{"society": societyID, "isActive": true},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to retrieve community admins", nil)
		return
	}
	defer cursor.Close(ctx)

	var admins []models.CommunityAdmin
	if err := cursor.All(ctx, &admins); err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to decode community admins", nil)
		return
	}
	for i := range admins {
		admins[i].Password = ""
	}

	utils.SendResponse(c, http.StatusOK, "Community admins retrieved successfully", admins)
}
