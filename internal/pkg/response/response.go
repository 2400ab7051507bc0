package response

import "github.com/gofiber/fiber/v2"

// Response represents a standard API response.
// Errors lists every failure message; Error repeats the first one.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NoContent sends a 204 response with no body
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// Error sends an error response with one or more messages
func Error(c *fiber.Ctx, statusCode int, messages ...string) error {
	resp := Response{
		Success: false,
		Errors:  messages,
	}
	if len(messages) > 0 {
		resp.Error = messages[0]
	}
	return c.Status(statusCode).JSON(resp)
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, messages ...string) error {
	return Error(c, fiber.StatusBadRequest, messages...)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
