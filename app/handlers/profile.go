package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"accounthub/app/config"
	"accounthub/app/platform/account"
	"accounthub/app/platform/storage"
)

func currentUserID(c *fiber.Ctx) uuid.UUID {
	return c.Locals("user_id").(uuid.UUID)
}

func UpdateProfile(c *fiber.Ctx) error {
	type UpdateProfileInput struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Gender    string `json:"gender"`
		Phone     string `json:"phone"`
		Timezone  string `json:"timezone"`

		Street     string `json:"street"`
		City       string `json:"city"`
		State      string `json:"state"`
		PostalCode string `json:"postalCode"`
		Country    string `json:"country"`

		EmailNotifications *bool `json:"emailNotifications"`
		SMSNotifications   *bool `json:"smsNotifications"`
		PushNotifications  *bool `json:"pushNotifications"`
	}

	var input UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid input.", "INVALID_INPUT",
			"The request body could not be parsed.")
	}

	_, err := accountService(c).UpdateProfile(currentUserID(c), account.ProfileUpdateInput{
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		Gender:             input.Gender,
		Phone:              input.Phone,
		Timezone:           input.Timezone,
		Street:             input.Street,
		City:               input.City,
		State:              input.State,
		PostalCode:         input.PostalCode,
		Country:            input.Country,
		EmailNotifications: input.EmailNotifications,
		SMSNotifications:   input.SMSNotifications,
		PushNotifications:  input.PushNotifications,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully.",
		"code":    "PROFILE_UPDATED",
		"details": "Your profile information has been successfully updated.",
	})
}

func GetProfile(c *fiber.Ctx) error {
	user, err := accountService(c).GetProfile(currentUserID(c))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{"user": user})
}

func UploadProfilePicture(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)
	storageService := storage.NewStorageService(cfg.Storage())

	file, err := c.FormFile("profilePicture")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "No file uploaded", "NO_FILE_UPLOADED",
			"Please upload a valid image file.")
	}

	if !storageService.IsFileExtensionAllowed(file.Filename) {
		return jsonError(c, fiber.StatusBadRequest, "Invalid file type", "INVALID_FILE_TYPE",
			"Please upload a valid image file.")
	}

	key := storageService.GenerateKeyName(file.Filename)
	if err := storageService.SaveFile(file, key, c); err != nil {
		return domainError(c, err)
	}

	previous, err := accountService(c).SetProfilePicture(currentUserID(c), key)
	if err != nil {
		return domainError(c, err)
	}

	// Evict the stale blob; a failure here must not fail the upload.
	if previous != "" {
		if err := storageService.DeleteFile(previous); err != nil {
			log.Errorf("failed to evict previous profile picture %s: %v", previous, err)
		}
	}

	return c.JSON(fiber.Map{
		"message":        "Profile picture updated successfully",
		"code":           "PROFILE_PICTURE_UPDATED",
		"profilePicture": key,
	})
}

func DeleteProfilePicture(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)
	storageService := storage.NewStorageService(cfg.Storage())

	previous, err := accountService(c).ClearProfilePicture(currentUserID(c))
	if err != nil {
		return domainError(c, err)
	}

	if previous != "" {
		if err := storageService.DeleteFile(previous); err != nil {
			log.Errorf("failed to evict profile picture %s: %v", previous, err)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Profile picture deleted successfully",
		"code":    "PROFILE_PICTURE_DELETED",
	})
}
