package models

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gatherly/server/internal/apperr"
)

// EnsureEventIndexes creates the indexes the event queries rely on,
// including the 2dsphere index backing proximity search.
func (mdb *MongodbRepo) EnsureEventIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ctx, DBName, EventsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
			Options: options.Index().SetName("location_2dsphere"),
		},
		{
			Keys:    bson.D{{Key: "title", Value: 1}},
			Options: options.Index().SetName("title_idx"),
		},
		{
			Keys: bson.D{
				{Key: "date", Value: 1},
				{Key: "time", Value: 1},
			},
			Options: options.Index().SetName("date_time_idx"),
		},
		{
			Keys:    bson.D{{Key: "rsvp.userId", Value: 1}},
			Options: options.Index().SetName("rsvp_user_idx"),
		},
	}

	_, err = col.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("error creating indexes: %v", err)
	}

	return nil
}

func (mdb *MongodbRepo) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	col, err := mdb.GetCollection(ctx, DBName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Labels == nil {
		event.Labels = []string{}
	}
	if event.RSVP == nil {
		event.RSVP = []RSVPEntry{}
	}

	_, err = col.InsertOne(ctx, event)
	if err != nil {
		return nil, apperr.Internalf("error inserting event: %v", err)
	}

	return event, nil
}

func (mdb *MongodbRepo) GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error) {
	col, err := mdb.GetCollection(ctx, DBName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var event Event
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFoundf("event %s", id.Hex())
		}
		return nil, apperr.Internalf("error finding event by id: %v", err)
	}

	return &event, nil
}

func (mdb *MongodbRepo) GetEventByTitle(ctx context.Context, title string) (*Event, error) {
	col, err := mdb.GetCollection(ctx, DBName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var event Event
	err = col.FindOne(ctx, bson.M{"title": title}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFoundf("event %q", title)
		}
		return nil, apperr.Internalf("error finding event by title: %v", err)
	}

	return &event, nil
}

func (mdb *MongodbRepo) UpdateEventByTitle(ctx context.Context, title string, fields map[string]interface{}) (*Event, error) {
	col, err := mdb.GetCollection(ctx, DBName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Event
	err = col.FindOneAndUpdate(ctx,
		bson.M{"title": title},
		bson.M{"$set": fields},
		opts,
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFoundf("event %q", title)
		}
		return nil, apperr.Internalf("error updating event: %v", err)
	}

	return &updated, nil
}

func (mdb *MongodbRepo) DeleteEventByTitle(ctx context.Context, title string) error {
	col, err := mdb.GetCollection(ctx, DBName, EventsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"title": title})
	if err != nil {
		return apperr.Internalf("error deleting event: %v", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFoundf("event %q", title)
	}

	return nil
}

// AddRSVP is a single conditional write: the push only matches when no entry
// for the same user exists, so two concurrent RSVPs cannot both land.
func (mdb *MongodbRepo) AddRSVP(ctx context.Context, eventID primitive.ObjectID, entry RSVPEntry) (*Event, error) {
	col, err := mdb.GetCollection(ctx, DBName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{
		"_id":        eventID,
		"rsvp.userId": bson.M{"$ne": entry.UserID},
	}
	update := bson.M{"$push": bson.M{"rsvp": entry}}

	res, err := col.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, apperr.Internalf("error adding rsvp: %v", err)
	}

	if res.MatchedCount == 0 {
		// Either the event is missing or the user already holds a role.
		if _, err := mdb.GetEventByID(ctx, eventID); err != nil {
			return nil, err
		}
		return nil, apperr.Conflictf("user %s already has an rsvp on event %s", entry.UserID.Hex(), eventID.Hex())
	}

	return mdb.GetEventByID(ctx, eventID)
}

// RemoveRSVP pulls the user's entry in one conditional write. The filter
// requires the membership to exist so a vanished entry surfaces as NotFound
// rather than a silent no-op.
func (mdb *MongodbRepo) RemoveRSVP(ctx context.Context, eventID, userID primitive.ObjectID) (*Event, error) {
	col, err := mdb.GetCollection(ctx, DBName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{
		"_id":        eventID,
		"rsvp.userId": userID,
	}
	update := bson.M{"$pull": bson.M{"rsvp": bson.M{"userId": userID}}}

	res, err := col.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, apperr.Internalf("error removing rsvp: %v", err)
	}

	if res.MatchedCount == 0 {
		if _, err := mdb.GetEventByID(ctx, eventID); err != nil {
			return nil, err
		}
		return nil, apperr.NotFoundf("rsvp for user %s on event %s", userID.Hex(), eventID.Hex())
	}

	return mdb.GetEventByID(ctx, eventID)
}

func (mdb *MongodbRepo) EventsByUser(ctx context.Context, userID primitive.ObjectID) ([]*Event, error) {
	return mdb.findEvents(ctx, bson.M{"rsvp.userId": userID}, nil)
}

func (mdb *MongodbRepo) EventsByLabels(ctx context.Context, labels []string) ([]*Event, error) {
	return mdb.findEvents(ctx, bson.M{"labels": bson.M{"$in": labels}}, nil)
}

func (mdb *MongodbRepo) EventsByOrganizer(ctx context.Context, organizerID primitive.ObjectID) ([]*Event, error) {
	filter := bson.M{
		"rsvp": bson.M{
			"$elemMatch": bson.M{
				"userId":    organizerID,
				"eventRole": RoleOrganizer,
			},
		},
	}
	return mdb.findEvents(ctx, filter, nil)
}

func (mdb *MongodbRepo) QueryEvents(ctx context.Context, filter EventFilter) ([]*Event, error) {
	query := bson.M{}
	if filter.City != "" {
		query["city"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.City), Options: "i"}
	}
	if filter.Label != "" {
		query["labels"] = filter.Label
	}
	if filter.UpcomingFrom != "" {
		// Lexicographic comparison is correct for YYYY-MM-DD strings.
		query["date"] = bson.M{"$gte": filter.UpcomingFrom}
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "time", Value: 1},
	})

	return mdb.findEvents(ctx, query, opts)
}

func (mdb *MongodbRepo) EventsNear(ctx context.Context, longitude, latitude, radiusMeters float64) ([]*Event, error) {
	filter := bson.M{
		"location": bson.M{
			"$nearSphere": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{longitude, latitude},
				},
				"$maxDistance": radiusMeters,
			},
		},
	}
	return mdb.findEvents(ctx, filter, nil)
}

func (mdb *MongodbRepo) findEvents(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*Event, error) {
	col, err := mdb.GetCollection(ctx, DBName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var cursor *mongo.Cursor
	if opts != nil {
		cursor, err = col.Find(ctx, filter, opts)
	} else {
		cursor, err = col.Find(ctx, filter)
	}
	if err != nil {
		return nil, apperr.Internalf("error finding events: %v", err)
	}
	defer cursor.Close(ctx)

	events := []*Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, apperr.Internalf("error decoding events: %v", err)
	}

	return events, nil
}
