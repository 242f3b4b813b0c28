package handler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"taller_manager/constants"
	"taller_manager/database"
	"taller_manager/model"
	"taller_manager/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

// SubirFotoReparacion sube una foto del dispositivo (estado al entrar,
// daños, reparación terminada) y la asocia a la reparación.
func SubirFotoReparacion(c *fiber.Ctx) error {
	db := database.DB

	reparacionId := c.Locals("inputId").(int)
	var reparacion model.Reparacion
	if err := db.First(&reparacion, reparacionId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REPARACION_NO_ENCONTRADA, err)
	}

	file, err := c.FormFile("foto")
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Falta el fichero de la foto", err, "foto")
	}

	ext := filepath.Ext(file.Filename)
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Formato no soportado (solo PNG, JPG, JPEG)", fmt.Errorf("invalid file format"), "foto")
	}

	fileReader, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	defer fileReader.Close()

	cld, err := cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	uploadResult, err := cld.Upload.Upload(context.Background(), fileReader, uploader.UploadParams{
		Folder:       "fotos_reparacion",
		PublicID:     fmt.Sprintf("reparacion_%d_%d", reparacion.ID, time.Now().Unix()),
		ResourceType: "image",
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "No se pudo subir la foto", err)
	}

	foto := model.ReparacionFoto{
		ReparacionId: reparacion.ID,
		Url:          uploadResult.SecureURL,
		PublicId:     uploadResult.PublicID,
	}
	if err := db.Create(&foto).Error; err != nil {
		// La foto ya está en Cloudinary: limpiar para no dejar huérfanos.
		go cld.Upload.Destroy(context.Background(), uploader.DestroyParams{PublicID: foto.PublicId})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, foto)
}

// BorrarFotoReparacion elimina una foto de la reparación y su copia remota.
func BorrarFotoReparacion(c *fiber.Ctx) error {
	db := database.DB

	fotoId := c.Locals("inputId").(int)
	var foto model.ReparacionFoto
	if err := db.First(&foto, fotoId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	if foto.PublicId != "" {
		cld, err := cloudinary.NewFromParams(
			os.Getenv("CLOUDINARY_CLOUD_NAME"),
			os.Getenv("CLOUDINARY_API_KEY"),
			os.Getenv("CLOUDINARY_API_SECRET"))
		if err == nil {
			go cld.Upload.Destroy(context.Background(), uploader.DestroyParams{PublicID: foto.PublicId})
		}
	}

	if err := db.Delete(&model.ReparacionFoto{}, fotoId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": fotoId})
}
