package handler

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const dashboardChannel = "dashboard:eventos"

var (
	redisClient = redis.NewClient(&redis.Options{Addr: redisAddr()})

	wsClients = make(map[*websocket.Conn]bool)
	wsMu      sync.Mutex
)

func redisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// PublishDashboardEvent publica un evento en Redis para que todos los
// procesos con paneles conectados lo reciban.
func PublishDashboardEvent(payload fiber.Map) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := redisClient.Publish(context.Background(), dashboardChannel, data).Err(); err != nil {
		log.Printf("Error al publicar evento de dashboard: %v", err)
	}
}

// DashboardWebsocket mantiene la conexión del panel en tiempo real: cada
// mensaje del canal Redis se reenvía a todos los paneles abiertos.
func DashboardWebsocket(c *websocket.Conn) {
	defer func() {
		wsMu.Lock()
		delete(wsClients, c)
		wsMu.Unlock()
		c.Close()
	}()

	wsMu.Lock()
	wsClients[c] = true
	wsMu.Unlock()

	pubsub := redisClient.Subscribe(context.Background(), dashboardChannel)
	defer pubsub.Close()

	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		wsMu.Lock()
		for conn := range wsClients {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(wsClients, conn)
			}
		}
		wsMu.Unlock()
	}
}
