// Package portal implements the upload-and-download workflow of the
// reservation portal.
//
// A visitor presents the shared access token on the entry route, which
// authorizes the session and leads to the upload form. Uploading an .xlsx
// reservation export stores it, clears the previous reports and asks the
// reservations processor for a summary plus one placard file per upcoming
// arrival day. The reports page lists everything under the downloads root
// grouped by directory, and each file can be downloaded as an attachment.
//
// # Routes
//
//	GET|POST /              token entry, redirects by session state
//	GET      /upload        upload form
//	POST     /upload        store spreadsheet and regenerate reports
//	GET      /reports       grouped listing of generated files
//	GET      /downloads/*   download one generated file
//	GET      /status        session state as JSON
//
// All routes except the entry are guarded by the session gate in
// core/middleware/auth.
package portal
