package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"materialapi/internal/model"
	"materialapi/internal/service"
)

type listResponse struct {
	Data []model.MaterialView `json:"data"`
}

type updateResponse struct {
	Updated bool `json:"updated"`
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

// CreateMaterial godoc
// @Summary      Upload a course material
// @Description  Stores the file and creates the material. Names are unique per topic.
// @Tags         materials
// @Accept       multipart/form-data
// @Produce      json
// @Param        name              formData  string  true   "Material name"
// @Param        topic_id          formData  string  true   "Topic id"
// @Param        material_type_id  formData  string  true   "Material type id"
// @Param        duration          formData  int     false  "Duration in seconds"
// @Param        created_by        formData  string  true   "Author"
// @Param        file              formData  file    true   "Material file"
// @Success      201  {object}  model.MaterialView
// @Failure      400  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Failure      409  {object}  errorPayload
// @Failure      500  {object}  errorPayload
// @Router       /api/materials [post]
func CreateMaterial(svc service.MaterialService, pathBase string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		duration := 0
		if v := c.FormValue("duration"); v != "" {
			duration, err = strconv.Atoi(v)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "duration must be an integer")
			}
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		view, err := svc.Create(c.UserContext(), originFromCtx(c, pathBase), service.CreateMaterialRequest{
			Name:           c.FormValue("name"),
			TopicID:        c.FormValue("topic_id"),
			MaterialTypeID: c.FormValue("material_type_id"),
			Duration:       duration,
			CreatedBy:      c.FormValue("created_by"),
			File: service.Upload{
				Filename:    fh.Filename,
				ContentType: contentType(fh.Header.Get(fiber.HeaderContentType)),
				Size:        fh.Size,
				Content:     f,
			},
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		if view == nil {
			return writeError(c, fiber.StatusConflict, "MATERIAL_EXISTS", "a material with this name already exists in the topic")
		}
		return c.Status(fiber.StatusCreated).JSON(view)
	}
}

// ListMaterials godoc
// @Summary      List active materials of a topic and type
// @Tags         materials
// @Produce      json
// @Param        topic_id          query  string  true  "Topic id"
// @Param        material_type_id  query  string  true  "Material type id"
// @Success      200  {object}  listResponse
// @Failure      400  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Router       /api/materials [get]
func ListMaterials(svc service.MaterialService, pathBase string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		views, err := svc.ListByTopicAndType(c.UserContext(), originFromCtx(c, pathBase),
			c.Query("topic_id"), c.Query("material_type_id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(listResponse{Data: views})
	}
}

// LookupMaterial godoc
// @Summary      Find a material by name within a topic
// @Tags         materials
// @Produce      json
// @Param        name      query  string  true  "Material name"
// @Param        topic_id  query  string  true  "Topic id"
// @Success      200  {object}  model.MaterialView
// @Failure      400  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Router       /api/materials/lookup [get]
func LookupMaterial(svc service.MaterialService, pathBase string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view, err := svc.GetByNameAndTopic(c.UserContext(), originFromCtx(c, pathBase),
			c.Query("name"), c.Query("topic_id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(view)
	}
}

// UpdateMaterial godoc
// @Summary      Rename a material and replace its file
// @Tags         materials
// @Accept       multipart/form-data
// @Produce      json
// @Param        id           path      string  true  "Material id"
// @Param        name         formData  string  true  "New name"
// @Param        modified_by  formData  string  true  "Editor"
// @Param        file         formData  file    true  "Replacement file"
// @Success      200  {object}  updateResponse
// @Failure      400  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Failure      500  {object}  errorPayload
// @Router       /api/materials/{id} [put]
func UpdateMaterial(svc service.MaterialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		updated, err := svc.Update(c.UserContext(), service.UpdateMaterialRequest{
			ID:         c.Params("id"),
			Name:       c.FormValue("name"),
			ModifiedBy: c.FormValue("modified_by"),
			File: service.Upload{
				Filename:    fh.Filename,
				ContentType: contentType(fh.Header.Get(fiber.HeaderContentType)),
				Size:        fh.Size,
				Content:     f,
			},
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(updateResponse{Updated: updated})
	}
}

// DeleteMaterial godoc
// @Summary      Soft-delete a material
// @Tags         materials
// @Produce      json
// @Param        id   path  string  true  "Material id"
// @Success      200  {object}  deleteResponse
// @Failure      400  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Router       /api/materials/{id} [delete]
func DeleteMaterial(svc service.MaterialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deleted, err := svc.SoftDelete(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(deleteResponse{Deleted: deleted})
	}
}

// ViewMaterial godoc
// @Summary      Get a material ready for in-browser viewing
// @Description  Office and text files are converted to PDF on each request.
// @Tags         materials
// @Produce      json
// @Param        id   path  string  true  "Material id"
// @Success      200  {object}  model.MaterialView
// @Failure      400  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Failure      500  {object}  errorPayload
// @Router       /api/materials/{id}/view [get]
func ViewMaterial(svc service.MaterialService, pathBase string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view, err := svc.View(c.UserContext(), originFromCtx(c, pathBase), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(view)
	}
}

func contentType(ct string) string {
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}
