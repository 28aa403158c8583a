package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"civicassets-be/config"
	"civicassets-be/middlewares"
	"civicassets-be/models"
	"civicassets-be/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Signup handles registration of citizens, technicians and HODs via a
// multipart form. HOD and technician accounts must attach a department,
// phone and an ID proof file, and start unapproved per their role.
func Signup(c *gin.Context) {
	var input struct {
		Name       string `form:"name" binding:"required,max=100"`
		Email      string `form:"email" binding:"required,email"`
		Password   string `form:"password" binding:"required,min=6"`
		Role       string `form:"role" binding:"required"`
		Department string `form:"department"`
		Phone      string `form:"phone"`
	}

	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := models.Role(input.Role)
	// Admin accounts are provisioned out of band, never self-registered.
	if !models.ValidRole(input.Role) || role == models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	userCollection := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(input.Email))

	count, err := userCollection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		log.Println("Error checking existing user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email already exists"})
		return
	}

	user := models.User{
		Name:      strings.TrimSpace(input.Name),
		Email:     email,
		Password:  input.Password,
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	user.SetApprovalDefaults()

	if user.RequiresDepartment() {
		if input.Department == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Department is required"})
			return
		}
		if input.Phone == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Phone is required"})
			return
		}

		deptID, err := primitive.ObjectIDFromHex(input.Department)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
			return
		}

		var dept models.Department
		if err := config.GetCollection("departments").FindOne(ctx, bson.M{"_id": deptID}).Decode(&dept); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Department not found"})
			return
		}

		// An HOD cannot sign up against a department that already has one.
		if role == models.RoleHOD && dept.Hod != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "This department already has a Head of Department. Please contact admin."})
			return
		}

		file, err := c.FormFile("idProof")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID proof is required"})
			return
		}

		idProofPath, err := utils.SaveUpload(c, file, "idProof", utils.UploadIDProofs)
		if err != nil {
			respondUploadError(c, err)
			return
		}

		user.Department = &deptID
		user.Phone = input.Phone
		user.IDProof = idProofPath
	}

	if err := user.HashPassword(); err != nil {
		log.Println("Error hashing password:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	result, err := userCollection.InsertOne(ctx, user)
	if err != nil {
		log.Println("Error inserting user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful. Please wait for approval.",
		"user": gin.H{
			"id":            result.InsertedID,
			"name":          user.Name,
			"email":         user.Email,
			"role":          user.Role,
			"adminApproved": user.AdminApproved,
			"hodApproved":   user.HodApproved,
		},
	})
}

// Login authenticates an account. Inactive accounts and accounts still
// pending approval cannot log in; the latter get told which gates remain.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userCollection := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(input.Email))}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !user.CanLogin() {
		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is deactivated"})
			return
		}
		c.JSON(http.StatusForbidden, gin.H{
			"error":            "Account pending approval",
			"pendingApprovals": user.PendingApprovals(),
		})
		return
	}

	if !user.ComparePassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex())
	if err != nil {
		log.Println("Error generating token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"role":       user.Role,
			"department": departmentSummary(ctx, user.Department),
		},
	})
}

// GetMe returns the authenticated account, password excluded.
func GetMe(c *gin.Context) {
	user, ok := middlewares.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"role":          user.Role,
		"phone":         user.Phone,
		"idProof":       user.IDProof,
		"adminApproved": user.AdminApproved,
		"hodApproved":   user.HodApproved,
		"isActive":      user.IsActive,
		"department":    departmentSummary(ctx, user.Department),
		"createdAt":     user.CreatedAt,
	})
}

// respondUploadError maps file intake failures onto the error taxonomy.
func respondUploadError(c *gin.Context, err error) {
	switch err {
	case utils.ErrFileTooLarge:
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case utils.ErrUnsupportedFile:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Println("Error saving upload:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded file"})
	}
}
