package handler

import (
	"github.com/gofiber/fiber/v2"

	"productivity-hub/internal/domain"
	"productivity-hub/internal/middleware"
	"productivity-hub/internal/service/skill"
	"productivity-hub/internal/service/user"
)

type UserHandler struct {
	userService  user.Service
	skillService skill.Service
}

func NewUserHandler(userService user.Service, skillService skill.Service) *UserHandler {
	return &UserHandler{
		userService:  userService,
		skillService: skillService,
	}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	current := middleware.GetCurrentUser(c)
	if current == nil {
		return middleware.Unauthorized("User not found")
	}
	return c.JSON(current)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	// An explicit null clears the field; encoding/json cannot tell it from absent.
	var body map[string]interface{}
	_ = c.BodyParser(&body)
	if val, ok := body["bio"]; ok && val == nil {
		cleared := (*string)(nil)
		input.Bio = &cleared
	}
	if val, ok := body["avatar_url"]; ok && val == nil {
		cleared := (*string)(nil)
		input.AvatarURL = &cleared
	}

	updated, err := h.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

func (h *UserHandler) SearchBySkill(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	result, err := h.skillService.Search(c.Context(), c.Query("skill"), userID, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (h *UserHandler) TopSkills(c *fiber.Ctx) error {
	skills, err := h.skillService.TopSkills(c.Context(), c.QueryInt("limit", 10))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": skills})
}
