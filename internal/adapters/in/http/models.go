package http

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Request and response bodies of api/openapi.yaml.

type Error struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SignUpRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	Phone    *string `json:"phone,omitempty"`
}

type LogInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LogInResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type User struct {
	ID        openapi_types.UUID `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Role      string             `json:"role"`
	Phone     *string            `json:"phone"`
	CreatedAt *time.Time         `json:"created_at,omitempty"`
}

type RoleUpdateRequest struct {
	Role string `json:"role"`
}

type Agent struct {
	ID    openapi_types.UUID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Phone *string            `json:"phone"`
}

type CreateOrderRequest struct {
	CustomerName      string              `json:"customer_name"`
	DeliveryAddress   string              `json:"delivery_address"`
	DeliveryLatitude  *float64            `json:"delivery_latitude,omitempty"`
	DeliveryLongitude *float64            `json:"delivery_longitude,omitempty"`
	PickupAddress     *string             `json:"pickup_address,omitempty"`
	PickupLatitude    *float64            `json:"pickup_latitude,omitempty"`
	PickupLongitude   *float64            `json:"pickup_longitude,omitempty"`
	AssignedAgentID   *openapi_types.UUID `json:"assigned_agent_id,omitempty"`
}

type ApproveOrderRequest struct {
	AgentID openapi_types.UUID `json:"agent_id"`
}

type OrderStatusRequest struct {
	Status    string              `json:"status"`
	VehicleID *openapi_types.UUID `json:"vehicle_id,omitempty"`
}

type Order struct {
	ID                openapi_types.UUID  `json:"id"`
	CustomerName      string              `json:"customer_name"`
	DeliveryAddress   string              `json:"delivery_address"`
	DeliveryLatitude  *float64            `json:"delivery_latitude"`
	DeliveryLongitude *float64            `json:"delivery_longitude"`
	PickupAddress     *string             `json:"pickup_address"`
	PickupLatitude    *float64            `json:"pickup_latitude"`
	PickupLongitude   *float64            `json:"pickup_longitude"`
	Status            string              `json:"status"`
	AssignedAgentID   *openapi_types.UUID `json:"assigned_agent_id"`
	OwnerID           *openapi_types.UUID `json:"owner_id"`
	VehicleID         *openapi_types.UUID `json:"vehicle_id"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

type RegisterVehicleRequest struct {
	LicensePlate string `json:"license_plate"`
	Model        string `json:"model"`
	VehicleType  string `json:"vehicle_type"`
}

type ApproveVehicleRequest struct {
	ApprovalStatus string `json:"approval_status"`
}

type AssignAgentRequest struct {
	AgentID openapi_types.UUID `json:"agent_id"`
}

type Vehicle struct {
	ID               openapi_types.UUID  `json:"id"`
	LicensePlate     string              `json:"license_plate"`
	Model            string              `json:"model"`
	VehicleType      string              `json:"vehicle_type"`
	Status           string              `json:"status"`
	ApprovalStatus   string              `json:"approval_status"`
	OwnerID          *openapi_types.UUID `json:"owner_id"`
	AssignedAgentID  *openapi_types.UUID `json:"assigned_agent_id"`
	CurrentLatitude  *float64            `json:"current_latitude"`
	CurrentLongitude *float64            `json:"current_longitude"`
	CreatedAt        time.Time           `json:"created_at"`
}

type ReportLocationRequest struct {
	AgentID    *openapi_types.UUID `json:"agent_id,omitempty"`
	Latitude   float64             `json:"latitude"`
	Longitude  float64             `json:"longitude"`
	RecordedAt *time.Time          `json:"recorded_at,omitempty"`
}

type DriverLocation struct {
	AgentID    openapi_types.UUID `json:"agent_id"`
	Latitude   float64            `json:"latitude"`
	Longitude  float64            `json:"longitude"`
	RecordedAt time.Time          `json:"recorded_at"`
}
