package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/twdsco/hackertracker/internal/calendar"
	"github.com/twdsco/hackertracker/internal/compose"
	"github.com/twdsco/hackertracker/internal/dateutil"
	"github.com/twdsco/hackertracker/internal/event"
	"github.com/twdsco/hackertracker/internal/ics"
	"github.com/twdsco/hackertracker/internal/log"
	"github.com/twdsco/hackertracker/internal/tagfilter"
)

func (srv *Server) mapHandlers() {
	srv.gin.Use(gin.Recovery(), requestLogger())

	srv.gin.GET("/health", srv.healthCheck)

	api := srv.gin.Group("/")
	if srv.limiter != nil {
		api.Use(srv.limiter.middleware())
	}

	api.GET("/api/events", srv.listEvents)
	api.GET("/api/events/:id", srv.getEvent)
	api.GET("/api/month/:year/:month", srv.getMonth)
	api.GET("/api/year/:year", srv.getYear)
	api.GET("/api/day/:date", srv.getDay)
	api.POST("/api/compose", srv.composeEvent)

	api.GET("/calendar.ics", srv.feed(ics.FeedAll))
	api.GET("/confirmed.ics", srv.feed(ics.FeedConfirmed))
	api.GET("/tentative.ics", srv.feed(ics.FeedTentative))
}

// filterFor builds the tag filter from the request's tags parameter.
func (srv *Server) filterFor(c *gin.Context) *tagfilter.Filter {
	vocab := srv.cfg.Vocabulary
	return tagfilter.New(vocab, tagfilter.Parse(c.Request.URL.RawQuery, vocab))
}

func (srv *Server) healthCheck(c *gin.Context) {
	events, loadedAt, _ := srv.data.get()
	body := gin.H{
		"status": "healthy",
		"events": events.Len(),
	}
	if !loadedAt.IsZero() {
		body["loaded_at"] = loadedAt.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, body)
}

func (srv *Server) listEvents(c *gin.Context) {
	filter := srv.filterFor(c)
	visible := event.SortByStart(filter.Apply(srv.data.collection().All()))

	out := make([]eventJSON, 0, len(visible))
	for _, ev := range visible {
		out = append(out, toEventJSON(ev))
	}
	c.JSON(http.StatusOK, gin.H{
		"tags":   filter.Active(),
		"query":  filter.Query(),
		"count":  len(out),
		"events": out,
	})
}

func (srv *Server) getEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "id must be an integer")
		return
	}

	events := srv.data.collection()
	ev, ok := events.Lookup(id)
	if !ok {
		abortWithError(c, http.StatusNotFound, event.ErrEventNotFound.Error())
		return
	}
	card, _ := calendar.BuildDetail(events, id)

	c.JSON(http.StatusOK, gin.H{
		"event":  toEventJSON(ev),
		"detail": toCardJSON(card),
	})
}

func (srv *Server) getMonth(c *gin.Context) {
	year, err := parseYear(c.Param("year"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		abortWithError(c, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}

	view := calendar.BuildMonth(
		srv.data.collection().All(),
		srv.filterFor(c),
		calendar.Cursor{Year: year, Month: time.Month(month)},
		srv.cfg.WeekStart,
	)
	c.JSON(http.StatusOK, toMonthJSON(view))
}

func (srv *Server) getYear(c *gin.Context) {
	year, err := parseYear(c.Param("year"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	view := calendar.BuildYear(srv.data.collection().All(), srv.filterFor(c), year, srv.cfg.WeekStart)
	c.JSON(http.StatusOK, toYearJSON(view))
}

func (srv *Server) getDay(c *gin.Context) {
	day, err := dateutil.ParseDay(c.Param("date"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	sel := calendar.SelectDay(srv.data.collection().All(), srv.filterFor(c), day)
	c.JSON(http.StatusOK, toSelectionJSON(sel))
}

func (srv *Server) composeEvent(c *gin.Context) {
	var req composeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := srv.cfg.Composer.Build(req.draft())
	if err != nil {
		log.Debug("compose rejected", "err", err)
		abortWithError(c, http.StatusBadRequest, compose.Message(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"json":      out.JSON,
		"file_name": out.FileName,
	})
}

func (srv *Server) feed(feed ics.Feed) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := srv.filterFor(c)
		events, _, version := srv.data.get()

		key := fmt.Sprintf("%d|%s|%s", version, feed, filter.Query())
		body, ok := srv.feeds.get(key)
		if !ok {
			body, _ = srv.cfg.Encoder.Encode(feed, filter.Apply(events.All()))
			srv.feeds.add(key, body)
		}

		c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", feed.FileName()))
		c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
	}
}

var errInvalidYear = errors.New("year must be between 1 and 9999")

func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil || year < 1 || year > 9999 {
		return 0, errInvalidYear
	}
	return year, nil
}
