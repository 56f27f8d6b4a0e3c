// SPDX-License-Identifier: MPL-2.0

// Package publish copies component resources into the host application.
//
// An asset publisher copies a component's asset directory into the public
// assets path under the component's lowercase name. A migration publisher
// copies the component's migrations into the host migrations directory.
// Publishing overwrites existing files and is not transactional: a failure
// midway leaves whatever was already copied in place.
package publish
