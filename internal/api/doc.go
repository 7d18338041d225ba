// Package api wires the HTTP routes of the postboard server.
//
//	@title						Postboard API
//	@version					1.0
//	@description				Users, posts and comments behind JWT authentication.
//	@description
//	@description				Log in with POST /auth/login to receive an access token (15 minutes)
//	@description				and a refresh token (7 days). Send the access token on every
//	@description				protected route as "Authorization: Bearer <token>" and exchange the
//	@description				refresh token at POST /auth/refresh when it expires.
//
//	@host						localhost:3000
//	@BasePath					/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Access token from /auth/login, sent as "Bearer <token>"
//
//	@tag.name					Auth
//	@tag.description			Registration, login and token refresh.
//	@tag.name					Users
//	@tag.name					Posts
//	@tag.name					Comments
//	@tag.name					Feed
//	@tag.description			Live post and comment events over WebSocket.
package api
