package handler

import (
	"errors"

	"thinkabout/internal/delivery/http/dto"
	"thinkabout/internal/delivery/http/middleware"
	"thinkabout/internal/domain/user"
	"thinkabout/internal/pkg/response"
	useruc "thinkabout/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

// UserHandler serves the caller's own profile and package tier.
type UserHandler struct {
	uc useruc.Usecase
}

type updateProfileRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Gender      *string `json:"gender"`
	DateOfBirth *string `json:"dateOfBirth" validate:"omitempty,date"`
}

func NewUserHandler(uc useruc.Usecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// RegisterRoutes mounts /me on r behind auth.
func (h *UserHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/me", auth, h.GetMe)
	r.Put("/me", auth, h.UpdateMe)
}

// RegisterPackageRoutes mounts the tier switches on r behind auth.
func (h *UserHandler) RegisterPackageRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/buy/premium", auth, h.BuyPremium)
	r.Post("/buy/free", auth, h.BuyFree)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	usr, err := currentUser(c)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, dto.NewUserProfileResponse(usr))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	usr, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	err = h.uc.UpdateProfile(c.Context(), usr, useruc.UpdateProfileInput{
		Name:        req.Name,
		Email:       req.Email,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		switch {
		case errors.Is(err, useruc.ErrEmailTaken):
			return middleware.NewAppError(fiber.StatusBadRequest, "Email already taken", nil, err)
		case errors.Is(err, useruc.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, response.MessageInvalidData, nil, err)
		case errors.Is(err, user.ErrNotFound):
			return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, err)
		default:
			return internalError(err)
		}
	}

	return response.Message(c, fiber.StatusOK, "User updated")
}

func (h *UserHandler) BuyPremium(c fiber.Ctx) error {
	return h.changePackage(c, user.PackagePremium, "Premium package bought successfully!")
}

func (h *UserHandler) BuyFree(c fiber.Ctx) error {
	return h.changePackage(c, user.PackageFree, "Free package bought successfully!")
}

func (h *UserHandler) changePackage(c fiber.Ctx, pkg user.Package, msg string) error {
	usr, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.uc.ChangePackage(c.Context(), usr.ID, pkg); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, err)
		}
		return internalError(err)
	}
	return response.Message(c, fiber.StatusOK, msg)
}
