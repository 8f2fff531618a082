package store

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

const MaxNotifications = 50

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	Timestamp time.Time
}

type Modal string

const (
	ModalCreateTask Modal = "createTask"
	ModalEditTask   Modal = "editTask"
	ModalDeleteTask Modal = "deleteTask"
	ModalProfile    Modal = "profile"
)

type Loading struct {
	Global bool
	Tasks  bool
	Auth   bool
}

type UIState struct {
	SidebarOpen   bool
	Theme         Theme
	Notifications []Notification
	Loading       Loading
	Modals        map[Modal]bool
	SelectedTask  *models.Task
}

func NewUIState() UIState {
	return UIState{
		Theme:         ThemeLight,
		Notifications: []Notification{},
		Modals:        closedModals(),
	}
}

func closedModals() map[Modal]bool {
	return map[Modal]bool{
		ModalCreateTask: false,
		ModalEditTask:   false,
		ModalDeleteTask: false,
		ModalProfile:    false,
	}
}

func (s UIState) ToggleSidebar() UIState {
	s.SidebarOpen = !s.SidebarOpen
	return s
}

func (s UIState) SetSidebarOpen(open bool) UIState {
	s.SidebarOpen = open
	return s
}

func (s UIState) SetTheme(theme Theme) UIState {
	s.Theme = theme
	return s
}

// AddNotification puts a notification at the head of the list and keeps
// at most MaxNotifications entries.
func (s UIState) AddNotification(typ NotificationType, message string, now time.Time) UIState {
	if typ == "" {
		typ = NotificationInfo
	}
	n := Notification{
		ID:        uuid.NewString(),
		Type:      typ,
		Message:   message,
		Timestamp: now,
	}

	notifications := make([]Notification, 0, min(len(s.Notifications)+1, MaxNotifications))
	notifications = append(notifications, n)
	for _, existing := range s.Notifications {
		if len(notifications) == MaxNotifications {
			break
		}
		notifications = append(notifications, existing)
	}
	s.Notifications = notifications
	return s
}

func (s UIState) RemoveNotification(id string) UIState {
	s.Notifications = slices.DeleteFunc(slices.Clone(s.Notifications), func(n Notification) bool { return n.ID == id })
	return s
}

func (s UIState) ClearNotifications() UIState {
	s.Notifications = []Notification{}
	return s
}

func (s UIState) SetLoading(loading Loading) UIState {
	s.Loading = loading
	return s
}

// OpenModal opens a modal. A non-nil task becomes the selected task.
func (s UIState) OpenModal(modal Modal, task *models.Task) UIState {
	s.Modals = s.cloneModals()
	s.Modals[modal] = true
	if task != nil {
		s.SelectedTask = task
	}
	return s
}

// CloseModal closes a modal. Closing a task editor also drops the selection.
func (s UIState) CloseModal(modal Modal) UIState {
	s.Modals = s.cloneModals()
	s.Modals[modal] = false
	if modal == ModalEditTask || modal == ModalDeleteTask {
		s.SelectedTask = nil
	}
	return s
}

func (s UIState) CloseAllModals() UIState {
	s.Modals = closedModals()
	s.SelectedTask = nil
	return s
}

func (s UIState) SetSelectedTask(task *models.Task) UIState {
	s.SelectedTask = task
	return s
}

func (s UIState) cloneModals() map[Modal]bool {
	modals := closedModals()
	for k, v := range s.Modals {
		modals[k] = v
	}
	return modals
}
