package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/madina-zvezda/yatube/src/core/config"
	"github.com/madina-zvezda/yatube/src/core/database"
	storage_go "github.com/supabase-community/storage-go"
)

// SaveImage stores an uploaded post image and returns the URL to serve it
// from. Uploads go to Supabase storage when it is configured, otherwise to
// local disk under MEDIA_ROOT. The stored name gets a random prefix so two
// uploads of cat.gif never clobber each other.
func SaveImage(file *multipart.FileHeader, folder string) (string, error) {
	name := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(file.Filename))
	objectPath := path.Join(folder, name)

	if config.Config("SUPABASE_URL") != "" {
		_, fileURL, _, err := UploadToSupabaseStorage(file, objectPath)
		if err != nil {
			return "", err
		}
		return fileURL, nil
	}
	return SaveImageLocal(file, objectPath)
}

// SaveImageLocal writes the upload under MEDIA_ROOT and returns the /media
// URL the router serves it from.
func SaveImageLocal(file *multipart.FileHeader, objectPath string) (string, error) {
	root := config.Config("MEDIA_ROOT")
	dst := filepath.Join(root, filepath.FromSlash(objectPath))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", err
	}
	return "/media/" + objectPath, nil
}

// UploadToSupabaseStorage uploads a file to Supabase storage and returns the file's path, public URL, and content type.
func UploadToSupabaseStorage(file *multipart.FileHeader, path string) (string, string, string, error) {
	// Initialize Supabase storage client
	storageClient, bucketName, err := database.SupabaseStorage()
	if err != nil {
		return "", "", "", err
	}

	// Open the file for reading
	fileBody, err := file.Open()
	if err != nil {
		return "", "", "", err
	}
	defer fileBody.Close()

	// Read the file contents
	fileBytes, err := io.ReadAll(fileBody)
	if err != nil {
		return "", "", "", err
	}

	// Reset the file pointer to the beginning
	_, err = fileBody.Seek(0, io.SeekStart)
	if err != nil {
		return "", "", "", err
	}

	// Detect content type based on file contents
	contentType := http.DetectContentType(fileBytes)

	// Upload the file to Supabase storage
	_, err = storageClient.UploadFile(bucketName, path, fileBody, storage_go.FileOptions{ContentType: &contentType})
	if err != nil {
		return "", "", "", err
	}

	// Get the public URL for the uploaded file
	response := storageClient.GetPublicUrl(bucketName, path)
	fileUrl := response.SignedURL

	return path, fileUrl, contentType, nil
}
