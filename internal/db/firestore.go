package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/mindease/mindease-backend/internal/logger"
	"github.com/mindease/mindease-backend/internal/utils"
)

// FirestoreService owns the process-scoped Firebase app and Firestore client.
// Initialization failure is not fatal: the service is still returned with a
// nil client and the API runs degraded, with storage-backed endpoints failing
// fast instead of the process refusing to start.
type FirestoreService struct {
	app    *firebase.App
	client *firestore.Client
	log    *logger.Logger
}

func NewFirestoreService(ctx context.Context, log *logger.Logger) (*FirestoreService, error) {
	serviceLog := log.With("service", "FirestoreService")
	svc := &FirestoreService{log: serviceLog}

	projectID := utils.GetEnv("FIREBASE_PROJECT_ID", "", log)
	credsPath := utils.GetEnv("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", "", log)

	var opts []option.ClientOption
	if credsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credsPath))
	}
	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}

	log.Info("Connecting to Firestore...")
	app, err := firebase.NewApp(ctx, cfg, opts...)
	if err != nil {
		return svc, fmt.Errorf("failed to init firebase app: %w", err)
	}
	svc.app = app

	client, err := app.Firestore(ctx)
	if err != nil {
		return svc, fmt.Errorf("failed to init firestore client: %w", err)
	}
	svc.client = client
	serviceLog.Info("Firestore connected")
	return svc, nil
}

// Client returns the raw Firestore client, nil when running degraded.
func (s *FirestoreService) Client() *firestore.Client {
	return s.client
}

func (s *FirestoreService) Available() bool {
	return s.client != nil
}

// Auth returns the Firebase token-verification client. Requires the app to
// have initialized, which can succeed even when Firestore did not.
func (s *FirestoreService) Auth(ctx context.Context) (*fbauth.Client, error) {
	if s.app == nil {
		return nil, fmt.Errorf("firebase app not initialized")
	}
	return s.app.Auth(ctx)
}

func (s *FirestoreService) Close() {
	if s.client != nil {
		_ = s.client.Close()
	}
}
