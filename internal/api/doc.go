// Package api exposes the template store and the resolver over HTTP.
//
//	srv := api.New(store, res,
//	    api.WithMailer(m),
//	    api.WithUsageRecorder(tasks.DirectUsage{Store: store}),
//	    api.WithBackups(backuper),
//	    api.WithLogger(log),
//	)
//	http.ListenAndServe(":8080", srv.Routes())
//
// # Routes
//
//	GET    /health/live                     liveness
//	GET    /health/ready                    readiness checks
//	GET    /templates                       list, filtered by ?identity= and ?category=
//	POST   /templates                       create
//	GET    /templates/categories            distinct categories
//	GET    /templates/export                export document
//	POST   /templates/import                import an export document
//	GET    /templates/{id}                  fetch one
//	PUT    /templates/{id}                  update
//	DELETE /templates/{id}                  delete
//	POST   /templates/{id}/duplicate        copy under a new id
//	POST   /templates/{id}/preview          resolve without a draft
//	POST   /templates/{id}/insert           resolve into the posted draft
//	POST   /templates/{id}/send             insert, then deliver the draft
//	POST   /drafts/save-as-template         store a draft as a new template
//	GET    /backups                         list backups
//	POST   /backups                         create a backup
//	POST   /backups/restore                 restore {"key"} or the newest backup
//
// Insert and send take the draft state in the request and return the updated
// state together with the patch and any unresolved include warnings. Placeholder
// values come from the "sender" object; dates follow the "locale" field or the
// Accept-Language header.
//
// # Errors
//
// Handlers return errors; a single error handler maps them to JSON responses of the
// form {"message", "code", "template", "request_id"}:
//
//	400  validation failures, invalid attachments, malformed JSON
//	404  unknown templates, routes and backups
//	409  concurrent template writes, drafts changed during insertion
//	413  request bodies over the configured limit
//	422  circular includes, runaway nesting, undecodable attachments
//	502  email delivery failures
//	503  mailer or backups not configured
//
// Unexpected errors are logged with the request id and answered with 500.
//
// Usage is recorded after each successful insertion through the UsageRecorder.
// A failed recording is logged and never fails the request.
package api
