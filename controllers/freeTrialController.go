package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"societypro-be/config"
	"societypro-be/models"
	"societypro-be/utils"
)

// requireEmailVerification reads REQUIRE_EMAIL_VERIFICATION. Verification is
// on unless the flag is explicitly set to "false".
func requireEmailVerification() bool {
	return strings.ToLower(os.Getenv("REQUIRE_EMAIL_VERIFICATION")) != "false"
}

func verificationLink(token string) string {
	base := os.Getenv("FRONTEND_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	return strings.TrimRight(base, "/") + "/verify-email?token=" + token
}

func validSocietyType(t string) bool {
	for _, v := range models.ValidSocietyTypes {
		if v == t {
			return true
		}
	}
	return false
}

func validFlatRange(r string) bool {
	for _, v := range models.ValidFlatRanges {
		if v == r {
			return true
		}
	}
	return false
}

// RegisterFreeTrial handles POST /api/free-trial/register
func RegisterFreeTrial(c *gin.Context) {
	var input struct {
		FullName       string `json:"fullName" binding:"required"`
		Email          string `json:"email" binding:"required,email"`
		Phone          string `json:"phone" binding:"required,len=10"`
		SocietyName    string `json:"societyName" binding:"required"`
		SocietyType    string `json:"societyType" binding:"required"`
		TotalFlats     string `json:"totalFlats" binding:"required"`
		City           string `json:"city" binding:"required"`
		Password       string `json:"password" binding:"required,min=6"`
		AgreeTerms     bool   `json:"agreeTerms"`
		ReceiveUpdates bool   `json:"receiveUpdates"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendResponse(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if !input.AgreeTerms {
		utils.SendResponse(c, http.StatusBadRequest, "You must agree to the terms and conditions", nil)
		return
	}
	if !validSocietyType(input.SocietyType) {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid society type", nil)
		return
	}
	if !validFlatRange(input.TotalFlats) {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid total flats range", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	trialCol := config.GetCollection("freetrialusers")

	count, err := trialCol.CountDocuments(ctx, bson.M{"email": strings.ToLower(input.Email)})
	if err != nil {
		log.Println("Error checking existing trial user:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}
	if count > 0 {
		utils.SendResponse(c, http.StatusBadRequest, "Email already registered for a free trial", nil)
		return
	}

	now := time.Now()
	user := models.FreeTrialUser{
		ID:                primitive.NewObjectID(),
		FullName:          input.FullName,
		Email:             strings.ToLower(input.Email),
		Phone:             input.Phone,
		SocietyName:       input.SocietyName,
		SocietyType:       input.SocietyType,
		TotalFlats:        input.TotalFlats,
		City:              input.City,
		Role:              "resident",
		Password:          input.Password,
		AgreeTerms:        input.AgreeTerms,
		ReceiveUpdates:    input.ReceiveUpdates,
		TrialEndsAt:       now.Add(models.TrialDuration),
		IsActive:          true,
		EmailVerified:     false,
		VerificationToken: uuid.NewString(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := user.HashPassword(); err != nil {
		log.Println("Error hashing password:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	if _, err := trialCol.InsertOne(ctx, user); err != nil {
		log.Println("Error inserting trial user:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	// Mail failures must not fail the signup.
	go func(u models.FreeTrialUser) {
		err := utils.SendWelcomeEmail(u.Email, utils.EmailContext{
			Name:             u.FullName,
			VerificationLink: verificationLink(u.VerificationToken),
			TrialEndsAt:      u.TrialEndsAt,
		})
		if err != nil {
			log.Println("Error sending welcome email:", err)
		}
	}(user)

	user.Password = ""
	utils.SendResponse(c, http.StatusCreated, "Free trial registration successful. Please check your email to verify your account.", gin.H{
		"user":               user,
		"trialEndsAt":        user.TrialEndsAt,
		"trialDaysRemaining": user.TrialDaysRemaining(),
	})
}

// VerifyEmail handles the verification link. The token arrives as a query
// parameter from the emailed link, or in the body when posted by the frontend.
func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" && c.Request.Method == http.MethodPost {
		var input struct {
			Token string `json:"token"`
		}
		if err := c.ShouldBindJSON(&input); err == nil {
			token = input.Token
		}
	}
	if token == "" {
		utils.SendResponse(c, http.StatusBadRequest, "Verification token is required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection("freetrialusers").UpdateOne(ctx,
		bson.M{"verificationToken": token},
		bson.M{
			"$set":   bson.M{"emailVerified": true, "updatedAt": time.Now()},
			"$unset": bson.M{"verificationToken": ""},
		})
	if err != nil {
		log.Println("Error verifying email:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}
	if result.MatchedCount == 0 {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid or expired verification token", nil)
		return
	}

	utils.SendResponse(c, http.StatusOK, "Email verified successfully. You can now log in.", nil)
}

// ResendVerification handles POST /api/free-trial/resend-verification
func ResendVerification(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendResponse(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	trialCol := config.GetCollection("freetrialusers")

	var user models.FreeTrialUser
	err := trialCol.FindOne(ctx, bson.M{"email": strings.ToLower(input.Email)}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendResponse(c, http.StatusNotFound, "No account found with this email", nil)
		} else {
			utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		}
		return
	}
	if user.EmailVerified {
		utils.SendResponse(c, http.StatusBadRequest, "Email is already verified", nil)
		return
	}

	token := uuid.NewString()
	_, err = trialCol.UpdateOne(ctx, bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"verificationToken": token, "updatedAt": time.Now()}})
	if err != nil {
		log.Println("Error rotating verification token:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	err = utils.SendVerificationEmail(user.Email, utils.EmailContext{
		Name:             user.FullName,
		VerificationLink: verificationLink(token),
		TrialEndsAt:      user.TrialEndsAt,
	})
	if err != nil {
		log.Println("Error sending verification email:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to send verification email", nil)
		return
	}

	utils.SendResponse(c, http.StatusOK, "Verification email sent. Please check your inbox.", nil)
}

// FreeTrialLogin handles POST /api/free-trial/login
func FreeTrialLogin(c *gin.Context) {
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

	trialCol := config.GetCollection("freetrialusers")

	var user models.FreeTrialUser
	err := trialCol.FindOne(ctx, bson.M{"email": strings.ToLower(input.Email)}).Decode(&user)
	if err != nil || !user.ComparePassword(input.Password) {
		utils.SendResponse(c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}
	if !user.IsActive {
		utils.SendResponse(c, http.StatusUnauthorized, "Account is deactivated. Please contact support.", nil)
		return
	}
	if !user.IsTrialActive() {
		utils.SendResponse(c, http.StatusForbidden, "Your free trial has expired. Please contact sales to continue.", nil)
		return
	}
	if requireEmailVerification() && !user.EmailVerified {
		utils.SendResponse(c, http.StatusForbidden, "Please verify your email before logging in", nil)
		return
	}

	token, err := utils.GenerateToken(utils.TokenClaims{
		UserID:      user.ID.Hex(),
		Role:        "resident",
		IsFreeTrial: true,
	})
	if err != nil {
		log.Println("Error generating token:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	now := time.Now()
	_, err = trialCol.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set": bson.M{"lastLoginAt": now, "updatedAt": now},
		"$inc": bson.M{"loginCount": 1},
	})
	if err != nil {
		log.Println("Error recording login:", err)
	}

	user.Password = ""
	user.LastLoginAt = &now
	user.LoginCount++
	utils.SendResponse(c, http.StatusOK, "Login successful", gin.H{
		"user":               user,
		"token":              token,
		"trialDaysRemaining": user.TrialDaysRemaining(),
	})
}

// GetFreeTrialProfile handles GET /api/free-trial/profile
func GetFreeTrialProfile(c *gin.Context) {
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.FreeTrialUser
	err = config.GetCollection("freetrialusers").FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		utils.SendResponse(c, http.StatusNotFound, "User not found", nil)
		return
	}

	user.Password = ""
	utils.SendResponse(c, http.StatusOK, "Profile retrieved successfully", gin.H{
		"user":               user,
		"trialDaysRemaining": user.TrialDaysRemaining(),
	})
}

// UpdateFreeTrialProfile handles PUT /api/free-trial/profile. Society details
// stay frozen after signup so existing complaint snapshots remain truthful.
func UpdateFreeTrialProfile(c *gin.Context) {
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

	var input struct {
		FullName       *string `json:"fullName,omitempty"`
		Phone          *string `json:"phone,omitempty"`
		ReceiveUpdates *bool   `json:"receiveUpdates,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendResponse(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.FullName != nil {
		update["fullName"] = *input.FullName
	}
	if input.Phone != nil {
		update["phone"] = *input.Phone
	}
	if input.ReceiveUpdates != nil {
		update["receiveUpdates"] = *input.ReceiveUpdates
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection("freetrialusers").UpdateOne(ctx,
		bson.M{"_id": objID}, bson.M{"$set": update})
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to update profile", nil)
		return
	}
	if result.MatchedCount == 0 {
		utils.SendResponse(c, http.StatusNotFound, "User not found", nil)
		return
	}

	utils.SendResponse(c, http.StatusOK, "Profile updated successfully", nil)
}

// ChangeFreeTrialPassword handles PUT /api/free-trial/change-password
func ChangeFreeTrialPassword(c *gin.Context) {
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

	var input struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendResponse(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	trialCol := config.GetCollection("freetrialusers")

	var user models.FreeTrialUser
	if err := trialCol.FindOne(ctx, bson.M{"_id": objID}).Decode(&user); err != nil {
		utils.SendResponse(c, http.StatusNotFound, "User not found", nil)
		return
	}
	if !user.ComparePassword(input.CurrentPassword) {
		utils.SendResponse(c, http.StatusUnauthorized, "Current password is incorrect", nil)
		return
	}

	user.Password = input.NewPassword
	if err := user.HashPassword(); err != nil {
		log.Println("Error hashing password:", err)
		utils.SendResponse(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	_, err = trialCol.UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$set": bson.M{"password": user.Password, "updatedAt": time.Now()}})
	if err != nil {
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to change password", nil)
		return
	}

	utils.SendResponse(c, http.StatusOK, "Password changed successfully", nil)
}

// GetTrialStatus handles GET /api/free-trial/status
func GetTrialStatus(c *gin.Context) {
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.FreeTrialUser
	err = config.GetCollection("freetrialusers").FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		utils.SendResponse(c, http.StatusNotFound, "User not found", nil)
		return
	}

	utils.SendResponse(c, http.StatusOK, "Trial status retrieved successfully", gin.H{
		"isActive":           user.IsActive,
		"isTrialActive":      user.IsTrialActive(),
		"trialEndsAt":        user.TrialEndsAt,
		"trialDaysRemaining": user.TrialDaysRemaining(),
		"emailVerified":      user.EmailVerified,
	})
}
