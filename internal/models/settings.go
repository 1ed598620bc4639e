package models

// NotificationSettings toggles per-channel notifications.
type NotificationSettings struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
}

// AppSettings is the console-wide settings record.
type AppSettings struct {
	AppName       string               `json:"appName"`
	Notifications NotificationSettings `json:"notifications"`
	Theme         string               `json:"theme"`
	DateFormat    string               `json:"dateFormat"`
}

// DefaultSettings returns the settings used until the organizer saves their own.
func DefaultSettings() AppSettings {
	return AppSettings{
		AppName:       "Afrinov Tech Expo",
		Notifications: NotificationSettings{Email: true, Push: false},
		Theme:         "system",
		DateFormat:    "DD/MM/YYYY",
	}
}
