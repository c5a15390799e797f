package controllers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxUploadSize = 5 * 1024 * 1024 // 5 MB
const attachmentsDir = "./uploads/attachments/"

var allowedAttachmentExts = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".txt": true, ".jpg": true, ".jpeg": true, ".png": true,
}

// UploadAttachmentHandler stores a meeting attachment and returns its URL.
// The returned path is served by the static /uploads/ file server.
// POST /api/file/upload
func UploadAttachmentHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		if err.Error() == "http: request body too large" {
			respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("File must not exceed %dMB.", maxUploadSize/1024/1024))
		} else {
			respondError(w, http.StatusBadRequest, "Could not parse multipart form: "+err.Error())
		}
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Could not read file from request: "+err.Error())
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(handler.Filename))
	if !allowedAttachmentExts[ext] {
		respondError(w, http.StatusBadRequest, "File type not allowed.")
		return
	}

	if err := os.MkdirAll(attachmentsDir, os.ModePerm); err != nil {
		log.Printf("Error creating upload directory %s: %v", attachmentsDir, err)
		respondError(w, http.StatusInternalServerError, "Could not create upload directory.")
		return
	}

	uniqueFileName := uuid.New().String() + ext
	filePath := filepath.Join(attachmentsDir, uniqueFileName)

	dst, err := os.Create(filePath)
	if err != nil {
		log.Printf("Error creating file %s: %v", filePath, err)
		respondError(w, http.StatusInternalServerError, "Could not store file.")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Printf("Error writing file %s: %v", filePath, err)
		respondError(w, http.StatusInternalServerError, "Could not store file.")
		return
	}

	fileAccessURL := "/uploads/attachments/" + uniqueFileName
	log.Printf("Uploaded attachment %s, served at %s", filePath, fileAccessURL)

	respondJSON(w, http.StatusOK, map[string]string{"url": fileAccessURL})
}
