package query

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/database/mongoclient"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/base/metrics"
	"github.com/x-xyz/launchpad/domain"
)

const (
	queryMaxTime       = 20 * time.Second
	slowQueryThreshold = 500 * time.Millisecond
	maxTransactions    = 10
)

var (
	timeNow = time.Now
)

type impl struct {
	client *mongoclient.Client
	met    metrics.Service
	tokens chan int
}

// New initializes an impl
func New(client *mongoclient.Client, met metrics.Service) Mongo {
	tokens := make(chan int, maxTransactions)
	for i := 0; i < maxTransactions; i++ {
		tokens <- i + 1
	}
	return &impl{
		client: client,
		met:    met,
		tokens: tokens,
	}
}

func (im *impl) collection(table domain.Table) *mongo.Collection {
	return im.client.Database(im.client.DbName).Collection(string(table))
}

func (im *impl) logerr(logger log.Logger, msg string, err error) {
	im.met.BumpSum("err", 1, "msg", msg)
	logger.WithFields(log.Fields{"err": err}).Error(msg)
}

// track records latency of an action and warns for slow queries
func (im *impl) track(context ctx.Ctx, table domain.Table, action string, query interface{}) func() {
	start := timeNow()
	timer := im.met.BumpTime("time", "table", string(table), "action", action)
	return func() {
		timer.End()
		elapsed := timeNow().Sub(start)
		if elapsed >= slowQueryThreshold {
			context.WithFields(log.Fields{
				"table":      table,
				"action":     action,
				"startTime":  start.Unix(),
				"durationMs": elapsed.Milliseconds(),
				"query":      query,
			}).Warn("mongo slowlog")
		}
	}
}

func (im *impl) Insert(context ctx.Ctx, table domain.Table, insert interface{}) error {
	defer im.track(context, table, "insert", nil)()

	if _, err := im.collection(table).InsertOne(context, insert); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		im.logerr(context.WithField("table", table), "Insert: InsertOne failed", err)
		return err
	}
	return nil
}

func (im *impl) FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error {
	defer im.track(context, table, "findone", query)()

	opts := options.FindOne().SetMaxTime(queryMaxTime)
	res := im.collection(table).FindOne(context, query, opts)
	if err := res.Decode(result); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		im.logerr(context.WithFields(log.Fields{"table": table, "query": query}), "FindOne: Decode failed", err)
		return err
	}
	return nil
}

func (im *impl) Count(context ctx.Ctx, table domain.Table, selector interface{}) (int, error) {
	defer im.track(context, table, "count", selector)()

	opts := options.Count().SetMaxTime(queryMaxTime)
	count, err := im.collection(table).CountDocuments(context, selector, opts)
	if err != nil {
		im.logerr(context.WithFields(log.Fields{"table": table, "selector": selector}), "Count: CountDocuments failed", err)
		return 0, err
	}
	return int(count), nil
}

func (im *impl) Upsert(context ctx.Ctx, table domain.Table, selector, update interface{}) error {
	defer im.track(context, table, "upsert", selector)()

	opts := options.Replace().SetUpsert(true)
	if _, err := im.collection(table).ReplaceOne(context, selector, update, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		im.logerr(context.WithFields(log.Fields{"table": table, "selector": selector}), "Upsert: ReplaceOne failed", err)
		return err
	}
	return nil
}

func sortOption(sortStrings ...string) bson.D {
	res := bson.D{}
	for _, sort := range sortStrings {
		if sort == "" {
			continue
		}
		if sort[0] == '-' {
			res = append(res, bson.E{Key: sort[1:], Value: -1})
		} else {
			res = append(res, bson.E{Key: sort, Value: 1})
		}
	}
	return res
}

func (im *impl) Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error {
	return im.SearchNSorts(context, table, offset, limit, []string{sort}, query, results)
}

func (im *impl) SearchNSorts(context ctx.Ctx, table domain.Table, offset, limit int, sortFields []string, query, results interface{}) error {
	defer im.track(context, table, "search", query)()

	opts := options.Find().SetMaxTime(queryMaxTime).SetSkip(int64(offset))
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if sorts := sortOption(sortFields...); len(sorts) > 0 {
		opts.SetSort(sorts)
	}
	cursor, err := im.collection(table).Find(context, query, opts)
	if err != nil {
		im.logerr(context.WithFields(log.Fields{"table": table, "query": query}), "Search: Find failed", err)
		return err
	}
	defer cursor.Close(context)

	if err := cursor.All(context, results); err != nil {
		im.logerr(context.WithFields(log.Fields{"table": table, "query": query}), "Search: cursor.All failed", err)
		return err
	}
	return nil
}

func (im *impl) Remove(context ctx.Ctx, table domain.Table, selector interface{}) error {
	defer im.track(context, table, "remove", selector)()

	res, err := im.collection(table).DeleteOne(context, selector)
	if err != nil {
		im.logerr(context.WithFields(log.Fields{"table": table, "selector": selector}), "Remove: DeleteOne failed", err)
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (im *impl) Patch(context ctx.Ctx, table domain.Table, selector, update interface{}, ops ...PatchOp) error {
	defer im.track(context, table, "patch", selector)()

	o := &patchOp{}
	for _, opt := range ops {
		opt(o)
	}

	var (
		err       error
		updateRes *mongo.UpdateResult
	)
	updater := bson.M{"$set": update}
	if o.patchMany {
		updateRes, err = im.collection(table).UpdateMany(context, selector, updater)
	} else {
		updateRes, err = im.collection(table).UpdateOne(context, selector, updater)
	}
	if err != nil {
		im.logerr(context.WithFields(log.Fields{"table": table, "selector": selector}), "Patch: Update failed", err)
		return err
	}
	if updateRes.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (im *impl) CustomPatch(context ctx.Ctx, table domain.Table, selector, update bson.M, upsert bool) error {
	defer im.track(context, table, "custompatch", selector)()

	opts := options.Update().SetUpsert(upsert)
	updateRes, err := im.collection(table).UpdateOne(context, selector, update, opts)
	if err != nil {
		im.logerr(context.WithFields(log.Fields{"table": table, "selector": selector}), "CustomPatch: UpdateOne failed", err)
		return err
	}
	if updateRes.MatchedCount == 0 && updateRes.UpsertedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (im *impl) Increment(context ctx.Ctx, table domain.Table, selector, result interface{}, field string, inc interface{}) error {
	defer im.track(context, table, "increment", selector)()

	updater := bson.M{"$inc": bson.M{field: inc}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(true)
	res := im.collection(table).FindOneAndUpdate(context, selector, updater, opts)
	if err := res.Decode(result); err != nil {
		im.logerr(context.WithFields(log.Fields{"table": table, "selector": selector}), "Increment: FindOneAndUpdate failed", err)
		return err
	}
	return nil
}

func (im *impl) EnsureIndexes(context ctx.Ctx, table domain.Table, indexes []Index) error {
	models := make([]mongo.IndexModel, 0, len(indexes))
	for _, idx := range indexes {
		models = append(models, mongo.IndexModel{
			Keys:    idx.Keys,
			Options: options.Index().SetUnique(idx.Unique),
		})
	}
	if len(models) == 0 {
		return nil
	}
	if _, err := im.collection(table).Indexes().CreateMany(context, models); err != nil {
		im.logerr(context.WithField("table", table), "EnsureIndexes: CreateMany failed", err)
		return err
	}
	return nil
}

func (im *impl) RunWithTransaction(context ctx.Ctx, run func(ctx.Ctx) error) error {
	// nested call joins the outer transaction
	if IsTransactionContext(context) {
		return run(context)
	}

	var token int
	select {
	case <-context.Done():
		return context.Err()
	case token = <-im.tokens:
	}
	defer func() {
		im.tokens <- token
	}()

	defer im.met.BumpTime("transaction.time").End()

	session, err := im.client.StartSession()
	if err != nil {
		im.logerr(context.Logger, "RunWithTransaction: StartSession failed", err)
		return err
	}
	defer session.EndSession(context)

	attempts := 0
	fn := func(sessCtx mongo.SessionContext) (interface{}, error) {
		attempts++
		if attempts > 1 {
			im.met.BumpSum("transaction.retry", 1)
		}
		return nil, run(ctx.Wrap(context, sessCtx))
	}
	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.New(writeconcern.WMajority()))
	_, err = session.WithTransaction(context, fn, txnOpts)
	return err
}
