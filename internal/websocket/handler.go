package websocket

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/documinds/documinds/api/internal/config"
	"github.com/documinds/documinds/api/internal/database"
	"github.com/documinds/documinds/api/internal/models"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents JWT claims
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JoinOrganizationPayload represents the payload for joining an organization room
type JoinOrganizationPayload struct {
	OrganizationID string `json:"organizationId"`
}

// UpgradeMiddleware checks if the request is a WebSocket upgrade request
func UpgradeMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler handles WebSocket connections
func Handler(c *websocket.Conn) {
	cfg := config.Get()
	hub := GetHub()

	// Get token from query params
	token := c.Query("token")
	if token == "" {
		c.WriteJSON(map[string]interface{}{
			"event": "error",
			"payload": map[string]string{
				"message": "Authentication required",
			},
		})
		c.Close()
		return
	}

	// Verify token
	claims, err := parseJWT(token, cfg.JWTSecret)
	if err != nil {
		c.WriteJSON(map[string]interface{}{
			"event": "error",
			"payload": map[string]string{
				"message": "Invalid token",
			},
		})
		c.Close()
		return
	}

	// Create client
	client := &Client{
		Conn:   c,
		UserID: claims.UserID,
		Rooms:  make(map[string]bool),
	}

	// Register client
	hub.Register(client)
	defer hub.Unregister(client)

	// Send connected event
	if err := hub.SendToClient(client, "connected", map[string]string{
		"userId": claims.UserID,
	}); err != nil {
		log.Printf("[WebSocket] Error sending connected event: %v", err)
	}

	// Handle incoming messages
	for {
		_, msgBytes, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WebSocket] Error reading message: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			log.Printf("[WebSocket] Error parsing message: %v", err)
			continue
		}

		switch msg.Event {
		case "join_organization":
			var payload JoinOrganizationPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				hub.SendToClient(client, "error", map[string]string{
					"message": "Invalid payload",
				})
				continue
			}
			handleJoinOrganization(client, hub, claims.UserID, payload)

		case "leave_organization":
			var payload JoinOrganizationPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				continue
			}
			hub.LeaveRoom(client, fmt.Sprintf("org:%s", payload.OrganizationID))

		default:
			log.Printf("[WebSocket] Unknown event: %s", msg.Event)
		}
	}
}

func parseJWT(tokenString string, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

func handleJoinOrganization(client *Client, hub *Hub, userID string, payload JoinOrganizationPayload) {
	db := database.GetDatabase()

	if payload.OrganizationID == "" {
		hub.SendToClient(client, "error", map[string]string{
			"message": "Missing required parameters",
		})
		return
	}

	// Check access
	var org models.Organization
	if err := db.Where("id = ? AND userId = ? AND deletedAt IS NULL", payload.OrganizationID, userID).
		First(&org).Error; err != nil {
		hub.SendToClient(client, "error", map[string]string{
			"message": "Organization not found or access denied",
		})
		return
	}

	roomID := fmt.Sprintf("org:%s", payload.OrganizationID)
	hub.JoinRoom(client, roomID)

	log.Printf("[WebSocket] User %s subscribed to sync events for organization %s", userID, payload.OrganizationID)
}
