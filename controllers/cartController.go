package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sokoni/sokoni-api/cart"
	"github.com/sokoni/sokoni-api/initializers"
	"github.com/sokoni/sokoni-api/utils"
)

// cartIdentity resolves who the cart belongs to. Authenticated shoppers use
// their user id; anonymous shoppers carry an X-Cart-Key header, minted here
// on first contact and echoed back so the client can keep it.
func cartIdentity(ctx *gin.Context) (key string, who cart.Identity) {
	if userClaims, exists := ctx.Get("user"); exists {
		claims := userClaims.(jwt.MapClaims)
		if id, ok := claims["user_id"].(float64); ok {
			who.UserId = fmt.Sprintf("%.0f", id)
			who.Email, _ = claims["email"].(string)
			return "user-" + who.UserId, who
		}
	}

	key = ctx.GetHeader("X-Cart-Key")
	if key == "" {
		key = "anon-" + uuid.NewString()
	}
	ctx.Header("X-Cart-Key", key)
	return key, who
}

func currentCart(ctx *gin.Context) (*cart.Store, cart.Identity) {
	key, who := cartIdentity(ctx)
	return initializers.Carts.Cart(ctx.Request.Context(), key), who
}

func GetCart(ctx *gin.Context) {
	store, _ := currentCart(ctx)
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"cart": gin.H{
			"items":      store.Items(),
			"total":      store.CartTotal(),
			"itemsCount": store.ItemsCount(),
		},
	})
}

func AddCartItem(ctx *gin.Context) {
	var item struct {
		ProductId string  `json:"productId" binding:"required"`
		StoreId   string  `json:"storeId" binding:"required"`
		StoreName string  `json:"storeName"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		ImageUrl  string  `json:"imageUrl"`
	}
	if err := ctx.ShouldBindJSON(&item); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	store, _ := currentCart(ctx)
	store.AddToCart(cart.LineItem{
		ProductId: item.ProductId,
		StoreId:   item.StoreId,
		StoreName: item.StoreName,
		Name:      item.Name,
		Price:     item.Price,
		ImageUrl:  item.ImageUrl,
	})

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message":    item.Name + " added to cart",
		"itemsCount": store.ItemsCount(),
	})
}

func UpdateCartItemQuantity(ctx *gin.Context) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	store, _ := currentCart(ctx)
	store.UpdateQuantity(ctx.Param("productId"), body.Quantity)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":    "Cart updated",
		"total":      store.CartTotal(),
		"itemsCount": store.ItemsCount(),
	})
}

func RemoveCartItem(ctx *gin.Context) {
	store, _ := currentCart(ctx)
	store.RemoveFromCart(ctx.Param("productId"))

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":    "Item removed from cart",
		"itemsCount": store.ItemsCount(),
	})
}

func ClearCart(ctx *gin.Context) {
	store, _ := currentCart(ctx)
	store.ClearCart()
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared"})
}

// Checkout converts the cart into one order per store. The cart is cleared
// only when at least one order was created; otherwise it is left as is so
// the shopper can retry.
func Checkout(ctx *gin.Context) {
	store, who := currentCart(ctx)
	total := store.CartTotal()

	result, err := cart.Checkout(ctx.Request.Context(), store, newDBOrderSubmitter(), who)
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			sendErrorResponse(ctx, http.StatusBadRequest, "Your cart is empty.")
			return
		}
		sendErrorResponse(ctx, http.StatusBadGateway, "We could not place your order. Please try again.")
		return
	}

	notification := utils.OrderNotification{
		OrderIds:       result.OrderIds,
		IdempotencyKey: result.IdempotencyKey,
		UserEmail:      who.Email,
		Total:          total,
	}
	go utils.SendOrderWebhook(notification)
	go utils.SendOrderConfirmationEmail(notification)

	response := gin.H{
		"message":        "Order placed successfully.",
		"orderIds":       result.OrderIds,
		"idempotencyKey": result.IdempotencyKey,
	}
	if len(result.FailedStores) > 0 {
		response["failedStores"] = result.FailedStores
		response["message"] = "Some of your orders could not be placed. The rest went through."
	}

	sendJSONResponse(ctx, http.StatusCreated, response)
}
