// Package repomanager vends repositories bound to a dbx.DBTX so services can
// use the same repository code inside and outside transactions.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/saketh1999/consistency-cal-sub000/internal/dbx"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/dailies"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/images"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/quotes"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/refreshtokens"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/tags"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/tasks"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/users"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/videos"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Dailies(db dbx.DBTX) dailies.Repository
	Images(db dbx.DBTX) images.Repository
	Videos(db dbx.DBTX) videos.Repository
	Tags(db dbx.DBTX) tags.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Quotes(db dbx.DBTX) quotes.Repository
}
