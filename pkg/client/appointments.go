package client

import (
	"context"
	"fmt"
	"net/http"
)

// RequestAppointment books an appointment with a counselor. Student only.
func (c *Client) RequestAppointment(ctx context.Context, req AppointmentRequest) (string, error) {
	var resp struct {
		Message       string `json:"message"`
		AppointmentID string `json:"appointment_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/appointments", req, &resp); err != nil {
		return "", err
	}
	return resp.AppointmentID, nil
}

// ListAppointments returns the authenticated user's appointments.
func (c *Client) ListAppointments(ctx context.Context) ([]Appointment, error) {
	var appointments []Appointment
	if err := c.do(ctx, http.MethodGet, "/api/appointments", nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateAppointmentStatus confirms or declines an appointment. Counselor only.
func (c *Client) UpdateAppointmentStatus(ctx context.Context, appointmentID, status string) error {
	req := struct {
		Status string `json:"status"`
	}{Status: status}
	path := fmt.Sprintf("/api/appointments/%s/status", appointmentID)
	return c.do(ctx, http.MethodPut, path, req, nil)
}

// ListNotifications returns the authenticated user's notifications.
func (c *Client) ListNotifications(ctx context.Context) ([]Notification, error) {
	var notifications []Notification
	if err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead marks a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	path := fmt.Sprintf("/api/notifications/%s/read", notificationID)
	return c.do(ctx, http.MethodPut, path, nil, nil)
}
