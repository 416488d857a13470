// Package navigator drives a browser's URL from the server.
//
// A Navigator is a querysync.Location whose Replace sends a "replace"
// message to a thin client, which applies it with history.replaceState.
// Handler serves one such navigator per WebSocket connection and exposes
// the bound query state to the client:
//
//	client → server  {"type":"location","url":"/list?page=2"}
//	client → server  {"type":"update","values":{"q":"boots"},"immediate":false}
//	client → server  {"type":"reset"}
//	server → client  {"type":"replace","url":"/list?page=3"}
//	server → client  {"type":"values","values":{"page":3,"q":"boots"}}
//	server → client  {"type":"error","error":{"code":"Q001","message":"..."}}
//
// Every client message is answered with a values or error frame.
package navigator
