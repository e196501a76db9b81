package middlewares

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"societypro-be/config"
	"societypro-be/models"
	"societypro-be/utils"
)

func abortUnauthorized(c *gin.Context, message string) {
	utils.SendResponse(c, http.StatusUnauthorized, message, nil)
	c.Abort()
}

// AuthMiddleware verifies the bearer token, loads the account behind it and
// places the resolved principal on the request context. Free trial users
// authenticate with role "resident" plus the is_free_trial claim and are
// looked up in their own collection.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Access denied. No token provided.")
			return
		}

		tokenString := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = authHeader[7:]
		}

		jwtSecret := os.Getenv("JWT_SECRET")
		if jwtSecret == "" {
			utils.SendResponse(c, http.StatusInternalServerError, "JWT secret not configured", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			log.Printf("Token validation failed: %v", err)
			abortUnauthorized(c, "Invalid authorization token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "Invalid token claims")
			return
		}
		userID, _ := claims["user_id"].(string)
		role, _ := claims["role"].(string)
		isFreeTrial, _ := claims["is_free_trial"].(bool)
		if userID == "" || role == "" {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		objID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		societyID := ""

		switch {
		case role == "resident" && isFreeTrial:
			var trial models.FreeTrialUser
			err = config.GetCollection("freetrialusers").FindOne(ctx, bson.M{"_id": objID}).Decode(&trial)
			if err != nil {
				abortUnauthorized(c, "User not found")
				return
			}
			if !trial.IsActive {
				abortUnauthorized(c, "Account is deactivated")
				return
			}
			if !trial.IsTrialActive() {
				abortUnauthorized(c, "Your free trial has ended")
				return
			}
		case role == "resident":
			var resident models.Resident
			err = config.GetCollection("residents").FindOne(ctx, bson.M{"_id": objID}).Decode(&resident)
			if err != nil {
				abortUnauthorized(c, "User not found")
				return
			}
			if !resident.IsActive {
				abortUnauthorized(c, "Account is deactivated")
				return
			}
			societyID = resident.Society.Hex()
		case role == "community_admin":
			var admin models.CommunityAdmin
			err = config.GetCollection("communityadmins").FindOne(ctx, bson.M{"_id": objID}).Decode(&admin)
			if err != nil {
				abortUnauthorized(c, "User not found")
				return
			}
			if !admin.IsActive {
				abortUnauthorized(c, "Account is deactivated")
				return
			}
			societyID = admin.Society.Hex()
		case role == "super_admin":
			var admin models.SuperAdmin
			err = config.GetCollection("superadmins").FindOne(ctx, bson.M{"_id": objID}).Decode(&admin)
			if err != nil {
				abortUnauthorized(c, "User not found")
				return
			}
			if !admin.IsActive {
				abortUnauthorized(c, "Account is deactivated")
				return
			}
		case role == "security_guard":
			var guard models.SecurityGuard
			err = config.GetCollection("securityguards").FindOne(ctx, bson.M{"_id": objID}).Decode(&guard)
			if err != nil {
				abortUnauthorized(c, "User not found")
				return
			}
			if !guard.IsActive {
				abortUnauthorized(c, "Account is deactivated")
				return
			}
			societyID = guard.Society.Hex()
		default:
			abortUnauthorized(c, "Unsupported user role")
			return
		}

		c.Set("user_id", userID)
		c.Set("role", role)
		c.Set("is_free_trial", isFreeTrial)
		if societyID != "" {
			c.Set("society_id", societyID)
		}

		c.Next()
	}
}
