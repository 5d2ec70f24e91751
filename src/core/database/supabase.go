package database

import (
	"errors"

	"github.com/madina-zvezda/yatube/src/core/config"
	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseStorage initializes the storage client and bucket name
func SupabaseStorage() (*storage_go.Client, string, error) {
	projectURL := config.Config("SUPABASE_URL")
	secretAPIKey := config.Config("SUPABASE_KEY")
	bucketName := config.Config("BUCKET_NAME")

	if projectURL == "" || secretAPIKey == "" || bucketName == "" {
		return nil, "", errors.New("missing SUPABASE_URL, SUPABASE_KEY, or BUCKET_NAME in environment variables")
	}

	storageClient := storage_go.NewClient(projectURL+"/storage/v1", secretAPIKey, nil)
	return storageClient, bucketName, nil
}
