// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses server configuration from CLI flags and environment.

# Precedence

CLI flags win over environment variables; a .env file in the working
directory is loaded first (via godotenv) so local development needs no
exported variables.

# Settings

Required:

  - DATABASE_URL (-d): connection string; a file path / DSN for sqlite, a
    postgres:// URL for postgres

Optional:

  - PORT (-p): server port (default: 8390)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
*/
package cliparse
