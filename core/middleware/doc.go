// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - Auth: The access-control gate. Requests whose session has not presented
//     the shared token are redirected to the entry point.
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//
// RayID is registered globally, Auth per route group by the portal feature.
package middleware
