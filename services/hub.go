package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Hub is an optional push channel layered over the polling endpoints: it
// mirrors the same room state snapshots to connected clients early, and the
// REST endpoints remain the source of truth for clients that only poll.
type Hub struct {
	clients     map[*Client]bool
	broadcast   chan []byte
	register    chan *Client
	unregister  chan *Client
	mutex       sync.RWMutex
	roomService *RoomService
}

type Client struct {
	hub      *Hub
	id       string
	socket   *websocket.Conn
	send     chan []byte
	roomCode string
	userID   uint
	name     string
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

var clientCounter uint64

func NewHub(roomService *RoomService) *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		broadcast:   make(chan []byte),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		roomService: roomService,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Client %s registered for room %s (user %d) - total clients: %d", client.id, client.roomCode, client.userID, h.clientCount())

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Client %s unregistered from room %s (user %d)", client.id, client.roomCode, client.userID)
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

func (h *Hub) clientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// BroadcastToRoom sends an event to every client connected for one room code.
func (h *Hub) BroadcastToRoom(roomCode string, messageType string, payload interface{}) {
	data, err := json.Marshal(Message{Type: messageType, Payload: payload})
	if err != nil {
		log.Printf("Error marshaling %s message: %v", messageType, err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.clients {
		if !strings.EqualFold(client.roomCode, roomCode) {
			continue
		}
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
}

// GetConnectedUsers lists user ids currently connected for a room.
func (h *Hub) GetConnectedUsers(roomCode string) []uint {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	var userIDs []uint
	for client := range h.clients {
		if strings.EqualFold(client.roomCode, roomCode) {
			userIDs = append(userIDs, client.userID)
		}
	}
	return userIDs
}

func (h *Hub) RegisterClient(conn *websocket.Conn, roomCode string, userID uint, name string) *Client {
	client := &Client{
		hub:      h,
		id:       fmt.Sprintf("client_%d_%d", time.Now().UnixNano(), atomic.AddUint64(&clientCounter, 1)),
		socket:   conn,
		send:     make(chan []byte, 256),
		roomCode: strings.ToUpper(roomCode),
		userID:   userID,
		name:     name,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()

	return client
}

func (h *Hub) sendRoomState(client *Client) {
	if h.roomService == nil {
		return
	}

	state, err := h.roomService.GetRoomState(context.Background(), client.roomCode)
	if err != nil {
		log.Printf("Error getting room state for client %s: %v", client.id, err)
		return
	}

	data, err := json.Marshal(Message{Type: "room_state", Payload: state})
	if err != nil {
		log.Printf("Error marshaling room state message: %v", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	select {
	case client.send <- data:
	default:
		close(client.send)
		delete(h.clients, client)
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.socket.Close()
	}()

	for {
		_, message, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	defer c.socket.Close()

	for message := range c.send {
		if err := c.socket.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case "ping":
		data, _ := json.Marshal(Message{Type: "pong", Payload: "pong"})
		c.send <- data

	case "request_room_state":
		c.hub.sendRoomState(c)

	default:
		log.Printf("Unknown message type %q from user %d in room %s", msg.Type, c.userID, c.roomCode)
	}
}
