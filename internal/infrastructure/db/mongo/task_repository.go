package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/domain"
	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/policy"
	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/ports"
)

const tasksCollection = "tasks"

// TaskRepository implements ports.TaskRepository using MongoDB. Mutations use
// single-document atomic operations, so no explicit locking is needed for
// update/delete races.
type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(tasksCollection)}
}

type mongoTask struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Text        string             `bson:"text"`
	Status      string             `bson:"status"`
	OwnerID     string             `bson:"owner_id"`
	AssigneeIDs []string           `bson:"assignee_ids"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (mt *mongoTask) toDomain() *domain.Task {
	return &domain.Task{
		ID:          mt.ID.Hex(),
		Title:       mt.Title,
		Text:        mt.Text,
		Status:      domain.TaskStatus(mt.Status),
		OwnerID:     mt.OwnerID,
		AssigneeIDs: mt.AssigneeIDs,
		CreatedAt:   mt.CreatedAt.UTC(),
	}
}

func (r *TaskRepository) Insert(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	assignees := t.AssigneeIDs
	if assignees == nil {
		assignees = []string{}
	}
	doc := mongoTask{
		Title:       t.Title,
		Text:        t.Text,
		Status:      string(t.Status),
		OwnerID:     t.OwnerID,
		AssigneeIDs: assignees,
		CreatedAt:   t.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	created := *t
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.AssigneeIDs = assignees
	return &created, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidTaskID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mt mongoTask
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return mt.toDomain(), nil
}

// List returns the tasks visible under scope. The scope's dimensions combine
// with OR semantics, mirroring policy.VisibilityScope.Matches. Sorting always
// carries an _id tiebreak so equal keys keep a deterministic insertion order.
func (r *TaskRepository) List(ctx context.Context, scope policy.VisibilityScope, sort ports.ListSort) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find()
	if sort.Field != "" {
		dir := 1
		if sort.Desc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: sort.Field, Value: dir}, {Key: "_id", Value: 1}})
	} else {
		opts.SetSort(bson.D{{Key: "_id", Value: 1}})
	}

	cur, err := r.coll.Find(ctx, scopeFilter(scope), opts)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cur.Close(ctx)

	var tasks []*domain.Task
	for cur.Next(ctx) {
		var mt mongoTask
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, mt.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func scopeFilter(scope policy.VisibilityScope) bson.M {
	var clauses []bson.M
	if scope.OwnerID != "" {
		clauses = append(clauses, bson.M{"owner_id": scope.OwnerID})
	}
	if scope.AssigneeID != "" {
		clauses = append(clauses, bson.M{"assignee_ids": scope.AssigneeID})
	}
	switch len(clauses) {
	case 0:
		// An empty scope matches nothing; never widen to the whole collection.
		return bson.M{"_id": bson.M{"$exists": false}}
	case 1:
		return clauses[0]
	default:
		return bson.M{"$or": clauses}
	}
}

// Update atomically applies the non-nil changes and returns the updated task.
func (r *TaskRepository) Update(ctx context.Context, id string, changes ports.TaskChanges) (*domain.Task, error) {
	set := bson.M{}
	if changes.Title != nil {
		set["title"] = *changes.Title
	}
	if changes.Text != nil {
		set["text"] = *changes.Text
	}
	if changes.Status != nil {
		set["status"] = string(*changes.Status)
	}
	if changes.AssigneeIDs != nil {
		set["assignee_ids"] = *changes.AssigneeIDs
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}
	return r.findAndSet(ctx, id, set)
}

// UpdateStatus atomically sets only the status field.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	return r.findAndSet(ctx, id, bson.M{"status": string(status)})
}

func (r *TaskRepository) findAndSet(ctx context.Context, id string, set bson.M) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidTaskID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mt mongoTask
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidTaskID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing visibility-scoped listings.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "assignee_ids", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
