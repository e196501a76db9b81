package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"societypro-be/config"
	"societypro-be/models"
	"societypro-be/utils"
)

// RegisterSuperAdmin handles first-time platform setup. Only one active
// super admin account may exist.
func RegisterSuperAdmin(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required,max=100"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendResponse(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	col := config.GetCollection("superadmins")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := col.CountDocuments(ctx, bson.M{"isActive": true})
	if err != nil {
		log.Println("Error checking existing super admin:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}
	if count > 0 {
		utils.SendResponse(c, http.StatusBadRequest, "Super admin already registered", nil)
		return
	}

	admin := models.SuperAdmin{
		Name:      input.Name,
		Email:     input.Email,
		Password:  input.Password,
		Role:      "super_admin",
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := admin.HashPassword(); err != nil {
		log.Println("Error hashing password:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	result, err := col.InsertOne(ctx, admin)
	if err != nil {
		log.Println("Error inserting super admin:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	utils.SendResponse(c, http.StatusCreated, "Super admin registered successfully", gin.H{
		"id":    result.InsertedID,
		"name":  admin.Name,
		"email": admin.Email,
	})
}

// SuperAdminLogin handles super admin login
func SuperAdminLogin(c *gin.Context) {
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

	var admin models.SuperAdmin
	err := config.GetCollection("superadmins").FindOne(ctx, bson.M{"email": input.Email}).Decode(&admin)
	if err != nil || !admin.ComparePassword(input.Password) {
		utils.SendResponse(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}
	if !admin.IsActive {
		utils.SendResponse(c, http.StatusUnauthorized, "Account is deactivated", nil)
		return
	}

	token, err := utils.GenerateToken(utils.TokenClaims{UserID: admin.ID.Hex(), Role: "super_admin"})
	if err != nil {
		log.Println("Error generating token:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	utils.SendResponse(c, http.StatusOK, "Login successful", gin.H{
		"user": gin.H{
			"id":    admin.ID,
			"name":  admin.Name,
			"email": admin.Email,
			"role":  admin.Role,
		},
		"token": token,
	})
}

// GetSuperAdminDashboard returns platform-wide counts for the super admin
// overview screen.
func GetSuperAdminDashboard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count := func(collection string, filter bson.M) int64 {
		n, err := config.GetCollection(collection).CountDocuments(ctx, filter)
		if err != nil {
			return 0
		}
		return n
	}

	activeFilter := bson.M{"isActive": true}
	complaintsByStatus := gin.H{}
	for _, status := range []models.ComplaintStatus{
		models.StatusPending, models.StatusInProgress, models.StatusResolved,
		models.StatusRejected, models.StatusClosed,
	} {
		complaintsByStatus[string(status)] = count("complaints", bson.M{"status": status})
	}

	utils.SendResponse(c, http.StatusOK, "Dashboard retrieved successfully", gin.H{
		"totalSocieties":       count("societies", activeFilter),
		"totalResidents":       count("residents", activeFilter),
		"totalCommunityAdmins": count("communityadmins", activeFilter),
		"totalSecurityGuards":  count("securityguards", activeFilter),
		"totalFreeTrialUsers":  count("freetrialusers", activeFilter),
		"totalComplaints":      count("complaints", bson.M{}),
		"complaintsByStatus":   complaintsByStatus,
	})
}
