package server

import (
	"net/http"
	"time"

	"github.com/daydesk/daydesk/internal/state"
	"github.com/gin-gonic/gin"
)

// Mutation endpoints mirror the store contract: invalid domain input is a
// silent no-op, so every accepted request answers 204 whether or not it
// changed anything. Only malformed JSON earns a 400.

type reminderPayload struct {
	Enabled bool      `json:"enabled"`
	At      time.Time `json:"at"`
	Sound   string    `json:"sound"`
}

func (p *reminderPayload) toReminder() *state.Reminder {
	if p == nil {
		return nil
	}
	return &state.Reminder{Enabled: p.Enabled, At: p.At, Sound: p.Sound}
}

type addTodoPayload struct {
	Text     string           `json:"text"`
	Priority string           `json:"priority"`
	Color    string           `json:"color"`
	DueDate  *time.Time       `json:"dueDate"`
	Reminder *reminderPayload `json:"reminder"`
}

func (h *httpHandler) handleAddTodo(c *gin.Context) {
	var request addTodoPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	h.store.AddTodo(state.TodoInput{
		Text:     request.Text,
		Priority: state.Priority(request.Priority),
		Color:    request.Color,
		DueDate:  request.DueDate,
		Reminder: request.Reminder.toReminder(),
	})
	c.Status(http.StatusNoContent)
}

type updateTodoPayload struct {
	Text          *string          `json:"text"`
	Completed     *bool            `json:"completed"`
	Priority      *string          `json:"priority"`
	Color         *string          `json:"color"`
	DueDate       *time.Time       `json:"dueDate"`
	Reminder      *reminderPayload `json:"reminder"`
	ClearReminder bool             `json:"clearReminder"`
}

func (h *httpHandler) handleUpdateTodo(c *gin.Context) {
	var request updateTodoPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	update := state.TodoUpdate{
		Text:          request.Text,
		Completed:     request.Completed,
		Color:         request.Color,
		DueDate:       request.DueDate,
		Reminder:      request.Reminder.toReminder(),
		ClearReminder: request.ClearReminder,
	}
	if request.Priority != nil {
		priority := state.Priority(*request.Priority)
		update.Priority = &priority
	}
	h.store.UpdateTodo(c.Param("id"), update)
	c.Status(http.StatusNoContent)
}

func (h *httpHandler) handleDeleteTodo(c *gin.Context) {
	h.store.DeleteTodo(c.Param("id"))
	c.Status(http.StatusNoContent)
}

type reorderTodosPayload struct {
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

func (h *httpHandler) handleReorderTodos(c *gin.Context) {
	var request reorderTodosPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	h.store.ReorderTodos(request.StartIndex, request.EndIndex)
	c.Status(http.StatusNoContent)
}

type addNotePayload struct {
	Title    string           `json:"title"`
	Content  string           `json:"content"`
	Color    string           `json:"color"`
	Category string           `json:"category"`
	Reminder *reminderPayload `json:"reminder"`
}

func (h *httpHandler) handleAddNote(c *gin.Context) {
	var request addNotePayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	h.store.AddNote(state.NoteInput{
		Title:    request.Title,
		Content:  request.Content,
		Color:    request.Color,
		Category: request.Category,
		Reminder: request.Reminder.toReminder(),
	})
	c.Status(http.StatusNoContent)
}

type updateNotePayload struct {
	Title         *string          `json:"title"`
	Content       *string          `json:"content"`
	Color         *string          `json:"color"`
	Category      *string          `json:"category"`
	Reminder      *reminderPayload `json:"reminder"`
	ClearReminder bool             `json:"clearReminder"`
}

func (h *httpHandler) handleUpdateNote(c *gin.Context) {
	var request updateNotePayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	h.store.UpdateNote(c.Param("id"), state.NoteUpdate{
		Title:         request.Title,
		Content:       request.Content,
		Color:         request.Color,
		Category:      request.Category,
		Reminder:      request.Reminder.toReminder(),
		ClearReminder: request.ClearReminder,
	})
	c.Status(http.StatusNoContent)
}

func (h *httpHandler) handleDeleteNote(c *gin.Context) {
	h.store.DeleteNote(c.Param("id"))
	c.Status(http.StatusNoContent)
}

type addHabitPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

func (h *httpHandler) handleAddHabit(c *gin.Context) {
	var request addHabitPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	h.store.AddHabit(state.HabitInput{
		Name:        request.Name,
		Description: request.Description,
		Color:       request.Color,
	})
	c.Status(http.StatusNoContent)
}

type updateHabitPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

func (h *httpHandler) handleUpdateHabit(c *gin.Context) {
	var request updateHabitPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	h.store.UpdateHabit(c.Param("id"), state.HabitUpdate{
		Name:        request.Name,
		Description: request.Description,
		Color:       request.Color,
	})
	c.Status(http.StatusNoContent)
}

func (h *httpHandler) handleDeleteHabit(c *gin.Context) {
	h.store.DeleteHabit(c.Param("id"))
	c.Status(http.StatusNoContent)
}

type toggleHabitPayload struct {
	Date string `json:"date"`
}

func (h *httpHandler) handleToggleHabit(c *gin.Context) {
	var request toggleHabitPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	h.store.ToggleHabitDate(c.Param("id"), request.Date)
	c.Status(http.StatusNoContent)
}

type addDrawingPadPayload struct {
	Name      string `json:"name"`
	ImageData string `json:"imageData"`
	Folder    string `json:"folder"`
}

func (h *httpHandler) handleAddDrawingPad(c *gin.Context) {
	var request addDrawingPadPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	h.store.AddDrawingPad(state.DrawingPadInput{
		Name:      request.Name,
		ImageData: request.ImageData,
		Folder:    request.Folder,
	})
	c.Status(http.StatusNoContent)
}

type updateDrawingPadPayload struct {
	Name      *string `json:"name"`
	ImageData *string `json:"imageData"`
	Folder    *string `json:"folder"`
}

func (h *httpHandler) handleUpdateDrawingPad(c *gin.Context) {
	var request updateDrawingPadPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	h.store.UpdateDrawingPad(c.Param("id"), state.DrawingPadUpdate{
		Name:      request.Name,
		ImageData: request.ImageData,
		Folder:    request.Folder,
	})
	c.Status(http.StatusNoContent)
}

func (h *httpHandler) handleDeleteDrawingPad(c *gin.Context) {
	h.store.DeleteDrawingPad(c.Param("id"))
	c.Status(http.StatusNoContent)
}

type addFilePayload struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Size   int64  `json:"size"`
	Data   string `json:"data"`
	Folder string `json:"folder"`
}

func (h *httpHandler) handleAddFile(c *gin.Context) {
	var request addFilePayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	h.store.AddFile(state.FileInput{
		Name:     request.Name,
		MIMEType: request.Type,
		Size:     request.Size,
		Data:     request.Data,
		Folder:   request.Folder,
	})
	c.Status(http.StatusNoContent)
}

func (h *httpHandler) handleDeleteFile(c *gin.Context) {
	h.store.DeleteFile(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *httpHandler) handleListNotifications(c *gin.Context) {
	snapshot := h.store.Snapshot()
	if snapshot.Notifications == nil {
		snapshot.Notifications = []state.Notification{}
	}
	c.JSON(http.StatusOK, snapshot.Notifications)
}

func (h *httpHandler) handleRemoveNotification(c *gin.Context) {
	h.store.RemoveNotification(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *httpHandler) handleClearNotifications(c *gin.Context) {
	h.store.ClearNotifications()
	c.Status(http.StatusNoContent)
}

type setViewPayload struct {
	View string `json:"view"`
}

func (h *httpHandler) handleSetView(c *gin.Context) {
	var request setViewPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	h.store.SetCurrentView(request.View)
	c.Status(http.StatusNoContent)
}

type setSidebarPayload struct {
	Open bool `json:"open"`
}

func (h *httpHandler) handleSetSidebar(c *gin.Context) {
	var request setSidebarPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	h.store.SetSidebarOpen(request.Open)
	c.Status(http.StatusNoContent)
}
