package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hireboard-backend/pkg/logs"
	"hireboard-backend/pkg/models"
)

const (
	usersCollection         = "users"
	companiesCollection     = "companies"
	invitesCollection       = "invites"
	recruitersCollection    = "recruiter_requests"
	jobsCollection          = "jobs"
	applicationsCollection  = "job_applications"
	notificationsCollection = "notifications"

	mongoConnectTimeout = 10 * time.Second
)

// MongoStore is the primary Store backend.
type MongoStore struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewMongoStore connects to MongoDB and ensures the unique indexes the
// domain relies on (email, cnpj, invite token, one application per
// user/job pair).
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	store := &MongoStore{
		client:   client,
		database: client.Database(database),
	}

	if err := store.createIndexes(ctx); err != nil {
		logs.Logger.WithError(err).Warn("failed to create indexes")
	}

	return store, nil
}

func (m *MongoStore) createIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		companiesCollection: {
			{Keys: bson.D{{Key: "cnpj", Value: 1}}, Options: unique},
		},
		invitesCollection: {
			{Keys: bson.D{{Key: "token", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		recruitersCollection: {
			{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "company_id", Value: 1}}},
		},
		jobsCollection: {
			{Keys: bson.D{{Key: "company_id", Value: 1}}},
		},
		applicationsCollection: {
			{Keys: bson.D{{Key: "job_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: unique},
		},
		notificationsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}

	for name, ims := range indexes {
		if _, err := m.database.Collection(name).Indexes().CreateMany(ctx, ims); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}
	return nil
}

func mongoErr(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Users

func (m *MongoStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	if _, err := m.database.Collection(usersCollection).InsertOne(ctx, user); err != nil {
		return mongoErr(err, "failed to create user")
	}
	return nil
}

func (m *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := m.database.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, mongoErr(err, "failed to get user by email")
	}
	return &user, nil
}

func (m *MongoStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := m.database.Collection(usersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, mongoErr(err, "failed to get user")
	}
	return &user, nil
}

func (m *MongoStore) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()

	result, err := m.database.Collection(usersCollection).UpdateOne(ctx,
		bson.M{"_id": user.ID}, bson.M{"$set": user})
	if err != nil {
		return mongoErr(err, "failed to update user")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoStore) SetUserMembership(ctx context.Context, userID, companyID string, role models.UserRole, isRecruiter bool) error {
	update := bson.M{"$set": bson.M{
		"company_id":   companyID,
		"role":         role,
		"is_recruiter": isRecruiter,
		"updated_at":   time.Now().UTC(),
	}}
	result, err := m.database.Collection(usersCollection).UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return mongoErr(err, "failed to set user membership")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoStore) SetUserStatus(ctx context.Context, userID string, status models.UserStatus, onboardingCompleted bool) error {
	update := bson.M{"$set": bson.M{
		"status":               status,
		"onboarding_completed": onboardingCompleted,
		"updated_at":           time.Now().UTC(),
	}}
	result, err := m.database.Collection(usersCollection).UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return mongoErr(err, "failed to set user status")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Companies

func (m *MongoStore) CreateCompany(ctx context.Context, company *models.Company) error {
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	company.CreatedAt = time.Now().UTC()
	company.UpdatedAt = company.CreatedAt

	if _, err := m.database.Collection(companiesCollection).InsertOne(ctx, company); err != nil {
		return mongoErr(err, "failed to create company")
	}
	return nil
}

func (m *MongoStore) GetCompanyByID(ctx context.Context, id string) (*models.Company, error) {
	var company models.Company
	err := m.database.Collection(companiesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&company)
	if err != nil {
		return nil, mongoErr(err, "failed to get company")
	}
	return &company, nil
}

func (m *MongoStore) GetCompanyByCNPJ(ctx context.Context, cnpj string) (*models.Company, error) {
	var company models.Company
	err := m.database.Collection(companiesCollection).FindOne(ctx, bson.M{"cnpj": cnpj}).Decode(&company)
	if err != nil {
		return nil, mongoErr(err, "failed to get company by cnpj")
	}
	return &company, nil
}

// addToCompanySet is a duplicate-safe $addToSet on one membership field.
func (m *MongoStore) addToCompanySet(ctx context.Context, companyID, field, userID string) error {
	update := bson.M{
		"$addToSet": bson.M{field: userID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	}
	result, err := m.database.Collection(companiesCollection).UpdateOne(ctx, bson.M{"_id": companyID}, update)
	if err != nil {
		return mongoErr(err, "failed to update company "+field)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoStore) AddCompanyAdmin(ctx context.Context, companyID, userID string) error {
	return m.addToCompanySet(ctx, companyID, "admins", userID)
}

func (m *MongoStore) AddCompanyRecruiter(ctx context.Context, companyID, userID string) error {
	return m.addToCompanySet(ctx, companyID, "recruiters", userID)
}

func (m *MongoStore) AddPendingRecruiter(ctx context.Context, companyID, userID string) error {
	return m.addToCompanySet(ctx, companyID, "pending_recruiters", userID)
}

func (m *MongoStore) RemovePendingRecruiter(ctx context.Context, companyID, userID string) error {
	update := bson.M{
		"$pull": bson.M{"pending_recruiters": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	result, err := m.database.Collection(companiesCollection).UpdateOne(ctx, bson.M{"_id": companyID}, update)
	if err != nil {
		return mongoErr(err, "failed to remove pending recruiter")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoStore) AddCompanyFollower(ctx context.Context, companyID, userID string) (bool, error) {
	// Filter excludes existing followers so the counter only moves when
	// the set actually grows.
	filter := bson.M{"_id": companyID, "followers": bson.M{"$ne": userID}}
	update := bson.M{
		"$addToSet": bson.M{"followers": userID},
		"$inc":      bson.M{"followers_count": 1},
	}
	result, err := m.database.Collection(companiesCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, mongoErr(err, "failed to add follower")
	}
	return result.ModifiedCount > 0, nil
}

func (m *MongoStore) RemoveCompanyFollower(ctx context.Context, companyID, userID string) (bool, error) {
	filter := bson.M{"_id": companyID, "followers": userID}
	update := bson.M{
		"$pull": bson.M{"followers": userID},
		"$inc":  bson.M{"followers_count": -1},
	}
	result, err := m.database.Collection(companiesCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, mongoErr(err, "failed to remove follower")
	}
	return result.ModifiedCount > 0, nil
}

func (m *MongoStore) IncrementCompanyJobs(ctx context.Context, companyID string, delta int64) error {
	result, err := m.database.Collection(companiesCollection).UpdateOne(ctx,
		bson.M{"_id": companyID}, bson.M{"$inc": bson.M{"jobs_count": delta}})
	if err != nil {
		return mongoErr(err, "failed to increment jobs count")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Invites

func (m *MongoStore) CreateInvite(ctx context.Context, invite *models.Invite) error {
	if invite.ID == "" {
		invite.ID = uuid.NewString()
	}
	invite.CreatedAt = time.Now().UTC()
	invite.UpdatedAt = invite.CreatedAt

	if _, err := m.database.Collection(invitesCollection).InsertOne(ctx, invite); err != nil {
		return mongoErr(err, "failed to create invite")
	}
	return nil
}

func (m *MongoStore) GetInviteByToken(ctx context.Context, token string) (*models.Invite, error) {
	var invite models.Invite
	err := m.database.Collection(invitesCollection).FindOne(ctx, bson.M{"token": token}).Decode(&invite)
	if err != nil {
		return nil, mongoErr(err, "failed to get invite")
	}
	return &invite, nil
}

func (m *MongoStore) ClaimInvite(ctx context.Context, token string) (*models.Invite, error) {
	// Single conditional update on the used flag. Two racing redeems can
	// both read used=false, but only one FindOneAndUpdate matches.
	filter := bson.M{"token": token, "used": false}
	update := bson.M{"$set": bson.M{"used": true, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var invite models.Invite
	err := m.database.Collection(invitesCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&invite)
	if err != nil {
		return nil, mongoErr(err, "failed to claim invite")
	}
	return &invite, nil
}

// Recruiter requests

func (m *MongoStore) CreateRecruiterRequest(ctx context.Context, req *models.RecruiterRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	req.CreatedAt = time.Now().UTC()
	req.UpdatedAt = req.CreatedAt

	if _, err := m.database.Collection(recruitersCollection).InsertOne(ctx, req); err != nil {
		return mongoErr(err, "failed to create recruiter request")
	}
	return nil
}

func (m *MongoStore) GetRecruiterRequestByID(ctx context.Context, id string) (*models.RecruiterRequest, error) {
	var req models.RecruiterRequest
	err := m.database.Collection(recruitersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		return nil, mongoErr(err, "failed to get recruiter request")
	}
	return &req, nil
}

func (m *MongoStore) GetPendingRecruiterRequest(ctx context.Context, userID, companyID string) (*models.RecruiterRequest, error) {
	filter := bson.M{"user_id": userID, "company_id": companyID, "status": models.RecruiterPending}

	var req models.RecruiterRequest
	err := m.database.Collection(recruitersCollection).FindOne(ctx, filter).Decode(&req)
	if err != nil {
		return nil, mongoErr(err, "failed to get pending recruiter request")
	}
	return &req, nil
}

func (m *MongoStore) ListRecruiterRequestsByCompany(ctx context.Context, companyID string, status models.RecruiterRequestStatus) ([]models.RecruiterRequest, error) {
	filter := bson.M{"company_id": companyID}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := m.database.Collection(recruitersCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, mongoErr(err, "failed to list recruiter requests")
	}
	defer cursor.Close(ctx)

	var out []models.RecruiterRequest
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode recruiter requests: %w", err)
	}
	return out, nil
}

func (m *MongoStore) TransitionRecruiterRequest(ctx context.Context, id string, to models.RecruiterRequestStatus, approvedBy string, at time.Time) (bool, error) {
	// Conditional on status=pending so terminal records never transition
	// twice, even under concurrent approve/reject calls.
	filter := bson.M{"_id": id, "status": models.RecruiterPending}
	update := bson.M{"$set": bson.M{
		"status":      to,
		"approved_by": approvedBy,
		"approved_at": at,
		"updated_at":  time.Now().UTC(),
	}}
	result, err := m.database.Collection(recruitersCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, mongoErr(err, "failed to transition recruiter request")
	}
	return result.ModifiedCount > 0, nil
}

// Jobs

func (m *MongoStore) CreateJob(ctx context.Context, job *models.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.CreatedAt = time.Now().UTC()
	job.UpdatedAt = job.CreatedAt

	if _, err := m.database.Collection(jobsCollection).InsertOne(ctx, job); err != nil {
		return mongoErr(err, "failed to create job")
	}
	return nil
}

func (m *MongoStore) GetJobByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := m.database.Collection(jobsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if err != nil {
		return nil, mongoErr(err, "failed to get job")
	}
	return &job, nil
}

func (m *MongoStore) IncrementJobViews(ctx context.Context, id string) error {
	result, err := m.database.Collection(jobsCollection).UpdateOne(ctx,
		bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return mongoErr(err, "failed to increment job views")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoStore) ListJobsByCompany(ctx context.Context, companyID string) ([]models.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := m.database.Collection(jobsCollection).Find(ctx, bson.M{"company_id": companyID}, opts)
	if err != nil {
		return nil, mongoErr(err, "failed to list jobs")
	}
	defer cursor.Close(ctx)

	var out []models.Job
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode jobs: %w", err)
	}
	return out, nil
}

func (m *MongoStore) CreateJobApplication(ctx context.Context, app *models.JobApplication) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	app.CreatedAt = time.Now().UTC()

	if _, err := m.database.Collection(applicationsCollection).InsertOne(ctx, app); err != nil {
		return mongoErr(err, "failed to create application")
	}
	return nil
}

func (m *MongoStore) GetJobApplication(ctx context.Context, jobID, userID string) (*models.JobApplication, error) {
	var app models.JobApplication
	err := m.database.Collection(applicationsCollection).FindOne(ctx,
		bson.M{"job_id": jobID, "user_id": userID}).Decode(&app)
	if err != nil {
		return nil, mongoErr(err, "failed to get application")
	}
	return &app, nil
}

func (m *MongoStore) IncrementJobApplications(ctx context.Context, jobID string) error {
	result, err := m.database.Collection(jobsCollection).UpdateOne(ctx,
		bson.M{"_id": jobID}, bson.M{"$inc": bson.M{"applications_count": 1}})
	if err != nil {
		return mongoErr(err, "failed to increment applications count")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Notifications

func (m *MongoStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = time.Now().UTC()

	if _, err := m.database.Collection(notificationsCollection).InsertOne(ctx, n); err != nil {
		return mongoErr(err, "failed to create notification")
	}
	return nil
}

func (m *MongoStore) ListNotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := m.database.Collection(notificationsCollection).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, mongoErr(err, "failed to list notifications")
	}
	defer cursor.Close(ctx)

	var out []models.Notification
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return out, nil
}

func (m *MongoStore) MarkNotificationRead(ctx context.Context, id, userID string) (bool, error) {
	filter := bson.M{"_id": id, "user_id": userID, "read": false}
	result, err := m.database.Collection(notificationsCollection).UpdateOne(ctx, filter,
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return false, mongoErr(err, "failed to mark notification read")
	}
	return result.ModifiedCount > 0, nil
}

func (m *MongoStore) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
