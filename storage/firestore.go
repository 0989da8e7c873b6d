package storage

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/portalempleos/backend/config"
	"github.com/portalempleos/backend/models"
)

const (
	offersCollection       = "ofertas"
	applicationsCollection = "postulaciones"
	cvMetadataCollection   = "cv_metadata"
	employersCollection    = "empleadores"
)

// FirestoreClient wraps Firestore operations for offers, applications,
// CV metadata and employer accounts
type FirestoreClient struct {
	client *firestore.Client
}

// NewFirestoreClient creates a new Firestore client
func NewFirestoreClient(ctx context.Context, cfg *config.Config) (*FirestoreClient, error) {
	client, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return &FirestoreClient{client: client}, nil
}

// Close closes the Firestore client
func (f *FirestoreClient) Close() error {
	return f.client.Close()
}

// CreateOffer creates a new offer document
func (f *FirestoreClient) CreateOffer(ctx context.Context, offer *models.Offer) error {
	offer.CreatedAt = time.Now()
	offer.UpdatedAt = offer.CreatedAt

	if _, err := f.client.Collection(offersCollection).Doc(offer.ID).Create(ctx, offer); err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}
	return nil
}

// GetOffer retrieves an offer by id
func (f *FirestoreClient) GetOffer(ctx context.Context, id string) (*models.Offer, error) {
	doc, err := f.client.Collection(offersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, models.ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	var offer models.Offer
	if err := doc.DataTo(&offer); err != nil {
		return nil, fmt.Errorf("failed to parse offer data: %w", err)
	}
	offer.ID = doc.Ref.ID
	return &offer, nil
}

// ListActiveOffers retrieves all currently active offers
func (f *FirestoreClient) ListActiveOffers(ctx context.Context) ([]*models.Offer, error) {
	iter := f.client.Collection(offersCollection).Where("activa", "==", true).Documents(ctx)
	defer iter.Stop()

	var offers []*models.Offer
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list offers: %w", err)
		}

		var offer models.Offer
		if err := doc.DataTo(&offer); err != nil {
			return nil, fmt.Errorf("failed to parse offer data: %w", err)
		}
		offer.ID = doc.Ref.ID
		offers = append(offers, &offer)
	}
	return offers, nil
}

// SetOfferActive flips the active flag on an offer
func (f *FirestoreClient) SetOfferActive(ctx context.Context, id string, active bool) error {
	_, err := f.client.Collection(offersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "activa", Value: active},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return models.ErrOfferNotFound
		}
		return fmt.Errorf("failed to update offer: %w", err)
	}
	return nil
}

// CreateApplication creates a new application document
func (f *FirestoreClient) CreateApplication(ctx context.Context, app *models.Application) error {
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now()
	}

	if _, err := f.client.Collection(applicationsCollection).Doc(app.ID).Create(ctx, app); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return models.ErrDuplicateApplication
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// GetApplication retrieves an application by id
func (f *FirestoreClient) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	doc, err := f.client.Collection(applicationsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, models.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	var app models.Application
	if err := doc.DataTo(&app); err != nil {
		return nil, fmt.Errorf("failed to parse application data: %w", err)
	}
	app.ID = doc.Ref.ID
	return &app, nil
}

// UpdateApplicationCVRef patches the CV storage reference on an application
func (f *FirestoreClient) UpdateApplicationCVRef(ctx context.Context, id, cvRef string) error {
	_, err := f.client.Collection(applicationsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "cvUrl", Value: cvRef},
	})
	if err != nil {
		return fmt.Errorf("failed to update application CV reference: %w", err)
	}
	return nil
}

// DeleteApplication removes an application document
func (f *FirestoreClient) DeleteApplication(ctx context.Context, id string) error {
	if _, err := f.client.Collection(applicationsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	return nil
}

// HasApplication reports whether the applicant email already applied to the offer
func (f *FirestoreClient) HasApplication(ctx context.Context, offerID, email string) (bool, error) {
	iter := f.client.Collection(applicationsCollection).
		Where("ofertaId", "==", offerID).
		Where("email", "==", email).
		Limit(1).
		Select().
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check duplicate application: %w", err)
	}
	return true, nil
}

// CountApplicationsSince counts applications from a client identifier with
// created_at after the given time, across all offers. Used by the sliding
// window rate limiter.
func (f *FirestoreClient) CountApplicationsSince(ctx context.Context, clientID string, since time.Time) (int, error) {
	iter := f.client.Collection(applicationsCollection).
		Where("clientIp", "==", clientID).
		Where("createdAt", ">", since).
		Select().
		Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to count applications: %w", err)
		}
		count++
	}
	return count, nil
}

// ListApplicationsByOffer retrieves all applications for an offer
func (f *FirestoreClient) ListApplicationsByOffer(ctx context.Context, offerID string) ([]*models.Application, error) {
	iter := f.client.Collection(applicationsCollection).Where("ofertaId", "==", offerID).Documents(ctx)
	defer iter.Stop()

	var apps []*models.Application
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list applications: %w", err)
		}

		var app models.Application
		if err := doc.DataTo(&app); err != nil {
			return nil, fmt.Errorf("failed to parse application data: %w", err)
		}
		app.ID = doc.Ref.ID
		apps = append(apps, &app)
	}
	return apps, nil
}

// FindApplicationByCVRef finds the application of an offer holding the given
// CV storage reference. Used to verify CV ownership before signing URLs.
func (f *FirestoreClient) FindApplicationByCVRef(ctx context.Context, offerID, cvRef string) (*models.Application, error) {
	iter := f.client.Collection(applicationsCollection).
		Where("ofertaId", "==", offerID).
		Where("cvUrl", "==", cvRef).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, models.ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find application by CV reference: %w", err)
	}

	var app models.Application
	if err := doc.DataTo(&app); err != nil {
		return nil, fmt.Errorf("failed to parse application data: %w", err)
	}
	app.ID = doc.Ref.ID
	return &app, nil
}

// ListApplicationsBefore retrieves applications created before the cutoff,
// oldest first. Used by the retention sweep.
func (f *FirestoreClient) ListApplicationsBefore(ctx context.Context, cutoff time.Time) ([]*models.Application, error) {
	iter := f.client.Collection(applicationsCollection).
		Where("createdAt", "<", cutoff).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var apps []*models.Application
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list old applications: %w", err)
		}

		var app models.Application
		if err := doc.DataTo(&app); err != nil {
			return nil, fmt.Errorf("failed to parse application data: %w", err)
		}
		app.ID = doc.Ref.ID
		apps = append(apps, &app)
	}
	return apps, nil
}

// UpsertCVMetadata inserts or replaces the metadata row keyed by application
// id. Re-running the parser overwrites, never duplicates.
func (f *FirestoreClient) UpsertCVMetadata(ctx context.Context, md *models.CVMetadata) error {
	if _, err := f.client.Collection(cvMetadataCollection).Doc(md.ApplicationID).Set(ctx, md); err != nil {
		return fmt.Errorf("failed to upsert CV metadata: %w", err)
	}
	return nil
}

// GetCVMetadata retrieves parsed metadata for an application
func (f *FirestoreClient) GetCVMetadata(ctx context.Context, applicationID string) (*models.CVMetadata, error) {
	doc, err := f.client.Collection(cvMetadataCollection).Doc(applicationID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, models.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get CV metadata: %w", err)
	}

	var md models.CVMetadata
	if err := doc.DataTo(&md); err != nil {
		return nil, fmt.Errorf("failed to parse CV metadata: %w", err)
	}
	md.ApplicationID = doc.Ref.ID
	return &md, nil
}

// DeleteCVMetadata removes parsed metadata for an application
func (f *FirestoreClient) DeleteCVMetadata(ctx context.Context, applicationID string) error {
	if _, err := f.client.Collection(cvMetadataCollection).Doc(applicationID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete CV metadata: %w", err)
	}
	return nil
}

// CreateEmployer creates a new employer account. Email doubles as document
// id for uniqueness.
func (f *FirestoreClient) CreateEmployer(ctx context.Context, employer *models.Employer) error {
	employer.CreatedAt = time.Now()
	employer.UpdatedAt = employer.CreatedAt

	docRef := f.client.Collection(employersCollection).Doc(employer.Email)

	_, err := docRef.Get(ctx)
	if err == nil {
		return models.ErrEmployerExists
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to check employer existence: %w", err)
	}

	if _, err := docRef.Set(ctx, employer); err != nil {
		return fmt.Errorf("failed to create employer: %w", err)
	}

	employer.ID = employer.Email
	return nil
}

// GetEmployer retrieves an employer by id (email)
func (f *FirestoreClient) GetEmployer(ctx context.Context, id string) (*models.Employer, error) {
	doc, err := f.client.Collection(employersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, models.ErrEmployerNotFound
		}
		return nil, fmt.Errorf("failed to get employer: %w", err)
	}

	var employer models.Employer
	if err := doc.DataTo(&employer); err != nil {
		return nil, fmt.Errorf("failed to parse employer data: %w", err)
	}
	employer.ID = doc.Ref.ID
	return &employer, nil
}
