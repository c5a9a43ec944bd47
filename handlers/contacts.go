// ABOUTME: Contact and schedule MCP tool handlers
// ABOUTME: Implements add/list/update/delete tools for contacts and appointments, both owned by a client
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/models"
)

type ContactHandlers struct {
	state *crm.State
}

func NewContactHandlers(state *crm.State) *ContactHandlers {
	return &ContactHandlers{state: state}
}

type AddContactInput struct {
	ClientID int64  `json:"client_id" jsonschema:"ID of the client this contact works for (required)"`
	Name     string `json:"name" jsonschema:"Contact name (required)"`
	Role     string `json:"role,omitempty" jsonschema:"Job title or role"`
	Phone    string `json:"phone,omitempty" jsonschema:"Phone number"`
	Email    string `json:"email" jsonschema:"Email address (required)"`
}

type ContactOutput struct {
	ID       int64  `json:"id"`
	ClientID int64  `json:"client_id"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email"`
}

func contactToOutput(c models.Contact) ContactOutput {
	return ContactOutput{
		ID:       c.ID,
		ClientID: c.ClientID,
		Name:     c.Name,
		Role:     c.Role,
		Phone:    c.Phone,
		Email:    c.Email,
	}
}

func (h *ContactHandlers) AddContact(_ context.Context, _ *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	contact, err := h.state.AddContact(models.Contact{
		ClientID: input.ClientID,
		Name:     input.Name,
		Role:     input.Role,
		Phone:    input.Phone,
		Email:    input.Email,
	})
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to add contact: %w", err)
	}
	return nil, contactToOutput(contact), nil
}

type ListByClientInput struct {
	ClientID int64 `json:"client_id,omitempty" jsonschema:"Only return records of this client (0 for all)"`
}

type ListContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
}

func (h *ContactHandlers) ListContacts(_ context.Context, _ *mcp.CallToolRequest, input ListByClientInput) (*mcp.CallToolResult, ListContactsOutput, error) {
	contacts := h.state.Contacts()
	if input.ClientID != 0 {
		contacts = h.state.ContactsFor(input.ClientID)
	}

	result := make([]ContactOutput, len(contacts))
	for i, c := range contacts {
		result[i] = contactToOutput(c)
	}
	return nil, ListContactsOutput{Contacts: result}, nil
}

type UpdateContactInput struct {
	ID       int64  `json:"id" jsonschema:"Contact ID (required)"`
	ClientID int64  `json:"client_id" jsonschema:"ID of the client this contact works for (required)"`
	Name     string `json:"name" jsonschema:"Contact name (required)"`
	Role     string `json:"role,omitempty" jsonschema:"Job title or role"`
	Phone    string `json:"phone,omitempty" jsonschema:"Phone number"`
	Email    string `json:"email" jsonschema:"Email address (required)"`
}

func (h *ContactHandlers) UpdateContact(_ context.Context, _ *mcp.CallToolRequest, input UpdateContactInput) (*mcp.CallToolResult, UpdateOutput, error) {
	found, err := h.state.UpdateContact(models.Contact{
		ID:       input.ID,
		ClientID: input.ClientID,
		Name:     input.Name,
		Role:     input.Role,
		Phone:    input.Phone,
		Email:    input.Email,
	})
	if err != nil {
		return nil, UpdateOutput{}, fmt.Errorf("failed to update contact: %w", err)
	}
	return nil, UpdateOutput{Updated: found}, nil
}

type DeleteByIDInput struct {
	ID int64 `json:"id" jsonschema:"Record ID (required)"`
}

type DeleteOutput struct {
	Deleted bool `json:"deleted"`
}

func (h *ContactHandlers) DeleteContact(_ context.Context, _ *mcp.CallToolRequest, input DeleteByIDInput) (*mcp.CallToolResult, DeleteOutput, error) {
	found, err := h.state.DeleteContact(input.ID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil, DeleteOutput{Deleted: found}, nil
}

type AddScheduleInput struct {
	ClientID int64  `json:"client_id" jsonschema:"ID of the client the appointment is with (required)"`
	Type     string `json:"type" jsonschema:"Appointment type: LOCAL_VISIT, VIDEO_CONFERENCE, or PHONE_CALL (required)"`
	Date     string `json:"date" jsonschema:"Date and time, e.g. 2025-03-14T15:00:00Z or 2025-03-14 15:00 (required)"`
	Notes    string `json:"notes,omitempty" jsonschema:"Free-form notes"`
}

type ScheduleOutput struct {
	ID       int64  `json:"id"`
	ClientID int64  `json:"client_id"`
	Type     string `json:"type"`
	Date     string `json:"date"`
	Notes    string `json:"notes,omitempty"`
}

func scheduleToOutput(s models.Schedule) ScheduleOutput {
	return ScheduleOutput{
		ID:       s.ID,
		ClientID: s.ClientID,
		Type:     string(s.Type),
		Date:     s.Date,
		Notes:    s.Notes,
	}
}

func (h *ContactHandlers) AddSchedule(_ context.Context, _ *mcp.CallToolRequest, input AddScheduleInput) (*mcp.CallToolResult, ScheduleOutput, error) {
	kind, _ := models.ParseAppointmentType(input.Type)
	schedule, err := h.state.AddSchedule(models.Schedule{
		ClientID: input.ClientID,
		Type:     kind,
		Date:     input.Date,
		Notes:    input.Notes,
	})
	if err != nil {
		return nil, ScheduleOutput{}, fmt.Errorf("failed to add schedule: %w", err)
	}
	return nil, scheduleToOutput(schedule), nil
}

type ListSchedulesOutput struct {
	Schedules []ScheduleOutput `json:"schedules"`
}

func (h *ContactHandlers) ListSchedules(_ context.Context, _ *mcp.CallToolRequest, input ListByClientInput) (*mcp.CallToolResult, ListSchedulesOutput, error) {
	schedules := h.state.Schedules()
	if input.ClientID != 0 {
		schedules = h.state.SchedulesFor(input.ClientID)
	}

	result := make([]ScheduleOutput, len(schedules))
	for i, s := range schedules {
		result[i] = scheduleToOutput(s)
	}
	return nil, ListSchedulesOutput{Schedules: result}, nil
}

func (h *ContactHandlers) DeleteSchedule(_ context.Context, _ *mcp.CallToolRequest, input DeleteByIDInput) (*mcp.CallToolResult, DeleteOutput, error) {
	found, err := h.state.DeleteSchedule(input.ID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete schedule: %w", err)
	}
	return nil, DeleteOutput{Deleted: found}, nil
}

type UpdateScheduleInput struct {
	ID       int64  `json:"id" jsonschema:"Schedule ID (required)"`
	ClientID int64  `json:"client_id" jsonschema:"ID of the client the appointment is with (required)"`
	Type     string `json:"type" jsonschema:"Appointment type: LOCAL_VISIT, VIDEO_CONFERENCE, or PHONE_CALL (required)"`
	Date     string `json:"date" jsonschema:"Date and time, e.g. 2025-03-14T15:00:00Z or 2025-03-14 15:00 (required)"`
	Notes    string `json:"notes,omitempty" jsonschema:"Free-form notes"`
}

func (h *ContactHandlers) UpdateSchedule(_ context.Context, _ *mcp.CallToolRequest, input UpdateScheduleInput) (*mcp.CallToolResult, UpdateOutput, error) {
	kind, _ := models.ParseAppointmentType(input.Type)
	found, err := h.state.UpdateSchedule(models.Schedule{
		ID:       input.ID,
		ClientID: input.ClientID,
		Type:     kind,
		Date:     input.Date,
		Notes:    input.Notes,
	})
	if err != nil {
		return nil, UpdateOutput{}, fmt.Errorf("failed to update schedule: %w", err)
	}
	return nil, UpdateOutput{Updated: found}, nil
}
