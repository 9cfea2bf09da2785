// Package qagent turns support documentation and a target HTML page into
// QA artifacts. It indexes the documentation for retrieval, generates test
// cases and Selenium scripts from retrieved context, and flags gaps between
// the HTML and its documentation.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, goquery/).
package qagent
