package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/sokoni/sokoni-api/initializers"
	"github.com/sokoni/sokoni-api/models"
)

func claimsFromContext(ctx *gin.Context) (jwt.MapClaims, bool) {
	userClaims, exists := ctx.Get("user")
	if !exists {
		return nil, false
	}
	claims, ok := userClaims.(jwt.MapClaims)
	return claims, ok
}

func userIdFromClaims(claims jwt.MapClaims) (int, bool) {
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, false
	}
	return int(id), true
}

func CreateStore(ctx *gin.Context) {
	var store models.Store
	if err := ctx.ShouldBindJSON(&store); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	claims, ok := claimsFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Authentication required")
		return
	}
	ownerId, ok := userIdFromClaims(claims)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Authentication required")
		return
	}
	store.OwnerID = ownerId

	if err := initializers.DB.Create(&store).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create store", err)
		return
	}

	ctx.JSON(http.StatusCreated, store)
}

func GetStores(ctx *gin.Context) {
	var stores []models.Store

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	offset := (page - 1) * limit

	query := initializers.DB.Model(&models.Store{})

	if search := ctx.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	result := query.Limit(limit).Offset(offset).Find(&stores)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch stores", result.Error)
		return
	}

	var count int64
	initializers.DB.Model(&models.Store{}).Count(&count)

	ctx.JSON(http.StatusOK, gin.H{
		"stores": stores,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetStore(ctx *gin.Context) {
	storeId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid store ID", err)
		return
	}

	var store models.Store
	result := initializers.DB.Preload("Products.Images").First(&store, storeId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Store not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve store", result.Error)
		}
		return
	}

	ctx.JSON(http.StatusOK, store)
}

// requireStoreOwnership loads the store and checks the caller owns it.
// Admins pass regardless.
func requireStoreOwnership(ctx *gin.Context, storeId int) (*models.Store, bool) {
	claims, ok := claimsFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}

	var store models.Store
	if err := initializers.DB.First(&store, storeId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Store not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch store", err)
		}
		return nil, false
	}

	if role, _ := claims["role"].(string); role == "admin" {
		return &store, true
	}

	ownerId, ok := userIdFromClaims(claims)
	if !ok || ownerId != store.OwnerID {
		sendErrorResponse(ctx, http.StatusForbidden, "You do not own this store")
		return nil, false
	}

	return &store, true
}

func UpdateStore(ctx *gin.Context) {
	storeId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid store ID", err)
		return
	}

	store, ok := requireStoreOwnership(ctx, storeId)
	if !ok {
		return
	}

	var updates struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Location    string `json:"location"`
		LogoUrl     string `json:"logoUrl"`
	}
	if err := ctx.ShouldBindJSON(&updates); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Model(store).Updates(map[string]any{
		"name":        updates.Name,
		"description": updates.Description,
		"location":    updates.Location,
		"logo_url":    updates.LogoUrl,
	}).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update store", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Store updated successfully."})
}

func DeleteStore(ctx *gin.Context) {
	storeId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid store ID", err)
		return
	}

	if _, ok := requireStoreOwnership(ctx, storeId); !ok {
		return
	}

	if err := initializers.DB.Delete(&models.Store{}, storeId).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete store", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Store deleted successfully."})
}
