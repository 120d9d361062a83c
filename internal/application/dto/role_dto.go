package dto

import "time"

// CreateRoleRequest entrada para crear un rol. El nombre de máquina se deriva de DisplayName.
type CreateRoleRequest struct {
	DisplayName string   `json:"display_name" validate:"required,max=100"`
	Description string   `json:"description,omitempty"`
	Modules     []string `json:"modules"`
	Permissions []string `json:"permissions"`
}

// UpdateRoleRequest cambios sobre un rol. Name no es editable.
type UpdateRoleRequest struct {
	DisplayName *string   `json:"display_name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Modules     *[]string `json:"modules,omitempty"`
	Permissions *[]string `json:"permissions,omitempty"`
}

// RoleResponse salida de un rol.
type RoleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description,omitempty"`
	Modules     []string  `json:"modules"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
