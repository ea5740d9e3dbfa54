package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"waste-routing-service/internal/domain"
	"waste-routing-service/internal/platform/obs"
	"waste-routing-service/internal/ports"
)

// Mongo-backed implementation of the ReportRepository and
// CollectorRepository ports.
//
// TryTransition relies on UpdateOne matching on {_id, status}: MongoDB
// applies single-document updates atomically, so two racing claims on
// the same pending report resolve to exactly one modified document.
type MongoRepository struct {
	Reports    *mongo.Collection
	Collectors *mongo.Collection
}

func NewMongoRepository(client *mongo.Client, database string) *MongoRepository {
	db := client.Database(database)
	return &MongoRepository{
		Reports:    db.Collection("reports"),
		Collectors: db.Collection("collectors"),
	}
}

// reportDoc is the BSON shape of a stored report.
type reportDoc struct {
	ReportID           string              `bson:"_id"`
	Latitude           float64             `bson:"latitude"`
	Longitude          float64             `bson:"longitude"`
	WasteType          domain.WasteType    `bson:"wasteType"`
	Urgency            domain.Urgency      `bson:"urgency"`
	Status             domain.ReportStatus `bson:"status"`
	AssignedCollector  string              `bson:"assignedCollector,omitempty"`
	ActualQuantityKg   float64             `bson:"actualQuantityKg,omitempty"`
	WasteTypeConfirmed bool                `bson:"wasteTypeConfirmed,omitempty"`
	CollectorNotes     string              `bson:"collectorNotes,omitempty"`
	CreatedAt          primitive.DateTime  `bson:"createdAt"`
	AssignedAt         *primitive.DateTime `bson:"assignedAt,omitempty"`
	CollectedAt        *primitive.DateTime `bson:"collectedAt,omitempty"`
	ResolvedAt         *primitive.DateTime `bson:"resolvedAt,omitempty"`
}

func (d *reportDoc) toDomain() *domain.Report {
	r := &domain.Report{
		ReportID:           d.ReportID,
		Location:           domain.Coordinates{Lat: d.Latitude, Lon: d.Longitude},
		WasteType:          d.WasteType,
		Urgency:            d.Urgency,
		Status:             d.Status,
		AssignedCollector:  d.AssignedCollector,
		ActualQuantityKg:   d.ActualQuantityKg,
		WasteTypeConfirmed: d.WasteTypeConfirmed,
		CollectorNotes:     d.CollectorNotes,
		CreatedAt:          d.CreatedAt.Time(),
	}
	if d.AssignedAt != nil {
		t := d.AssignedAt.Time()
		r.AssignedAt = &t
	}
	if d.CollectedAt != nil {
		t := d.CollectedAt.Time()
		r.CollectedAt = &t
	}
	if d.ResolvedAt != nil {
		t := d.ResolvedAt.Time()
		r.ResolvedAt = &t
	}
	return r
}

func (m *MongoRepository) GetReport(ctx context.Context, reportID string) (*domain.Report, error) {
	var doc reportDoc
	err := m.Reports.FindOne(ctx, bson.M{"_id": reportID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("get report %q: %w", reportID, domain.ErrReportNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get report %q: %w", reportID, err)
	}
	return doc.toDomain(), nil
}

func (m *MongoRepository) FindOpenByCollector(ctx context.Context, collectorID string) (_ []*domain.Report, err error) {
	defer obs.Time(ctx, "mongo.FindOpenByCollector")(&err)

	filter := bson.M{
		"assignedCollector": collectorID,
		"status": bson.M{"$in": []domain.ReportStatus{
			domain.StatusAssigned, domain.StatusInProgress,
		}},
	}
	return m.findReports(ctx, filter)
}

func (m *MongoRepository) FindPending(ctx context.Context) (_ []*domain.Report, err error) {
	defer obs.Time(ctx, "mongo.FindPending")(&err)

	return m.findReports(ctx, bson.M{"status": domain.StatusPending})
}

func (m *MongoRepository) FindByCollector(ctx context.Context, collectorID string) (_ []*domain.Report, err error) {
	defer obs.Time(ctx, "mongo.FindByCollector")(&err)

	return m.findReports(ctx, bson.M{"assignedCollector": collectorID})
}

func (m *MongoRepository) CountByCollectorAndStatus(
	ctx context.Context,
	collectorID string,
	statuses ...domain.ReportStatus,
) (int, error) {
	if len(statuses) == 0 {
		return 0, nil
	}

	n, err := m.Reports.CountDocuments(ctx, bson.M{
		"assignedCollector": collectorID,
		"status":            bson.M{"$in": statuses},
	})
	if err != nil {
		return 0, fmt.Errorf("count reports for %q: %w", collectorID, err)
	}
	return int(n), nil
}

func (m *MongoRepository) TryTransition(
	ctx context.Context,
	reportID string,
	from, to domain.ReportStatus,
	fields ports.TransitionFields,
) (_ bool, err error) {
	defer obs.Time(ctx, "mongo.TryTransition")(&err)

	if !from.CanTransition(to) {
		return false, nil
	}

	set := bson.M{"status": to}
	if fields.AssignedCollector != nil {
		set["assignedCollector"] = *fields.AssignedCollector
	}
	if fields.AssignedAt != nil {
		set["assignedAt"] = primitive.NewDateTimeFromTime(*fields.AssignedAt)
	}
	if fields.CollectedAt != nil {
		set["collectedAt"] = primitive.NewDateTimeFromTime(*fields.CollectedAt)
	}
	if fields.ResolvedAt != nil {
		set["resolvedAt"] = primitive.NewDateTimeFromTime(*fields.ResolvedAt)
	}
	if fields.ActualQuantityKg != nil {
		set["actualQuantityKg"] = *fields.ActualQuantityKg
	}
	if fields.WasteTypeConfirmed != nil {
		set["wasteTypeConfirmed"] = *fields.WasteTypeConfirmed
	}
	if fields.CollectorNotes != nil {
		set["collectorNotes"] = *fields.CollectorNotes
	}

	res, err := m.Reports.UpdateOne(ctx,
		bson.M{"_id": reportID, "status": from},
		bson.M{"$set": set},
	)
	if err != nil {
		return false, fmt.Errorf("transition report %q %s -> %s: %w", reportID, from, to, err)
	}
	return res.ModifiedCount > 0, nil
}

func (m *MongoRepository) FindActive(ctx context.Context) ([]*domain.Collector, error) {
	cur, err := m.Collectors.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("find active collectors: %w", err)
	}
	defer cur.Close(ctx)

	collectors := make([]*domain.Collector, 0, 16)
	for cur.Next(ctx) {
		var doc struct {
			CollectorID string `bson:"_id"`
			Name        string `bson:"name"`
			Active      bool   `bson:"active"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("find active collectors: decode: %w", err)
		}
		collectors = append(collectors, &domain.Collector{
			CollectorID: doc.CollectorID,
			Name:        doc.Name,
			Active:      doc.Active,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("find active collectors: cursor: %w", err)
	}
	return collectors, nil
}

func (m *MongoRepository) findReports(ctx context.Context, filter bson.M) ([]*domain.Report, error) {
	cur, err := m.Reports.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query reports collection: %w", err)
	}
	defer cur.Close(ctx)

	reports := make([]*domain.Report, 0, 64)
	for cur.Next(ctx) {
		var doc reportDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode report document: %w", err)
		}
		reports = append(reports, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("report cursor iteration: %w", err)
	}
	return reports, nil
}
