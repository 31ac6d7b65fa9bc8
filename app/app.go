package app

import (
	"time"

	"github.com/theossalmeida/front-great-people/config"
	"github.com/theossalmeida/front-great-people/database"
	"github.com/theossalmeida/front-great-people/views"
)

type App struct {
	*database.Sessions
	API views.API
	config.Config

	// Now is the clock used for created_date stamps.
	Now func() time.Time
}
