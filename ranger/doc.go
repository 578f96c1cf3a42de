/*
Package ranger initializes and runs the accounts service with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New] using a [Config] from [LoadConfig].

[New] builds, in order: the app and HTTP loggers, the user store, the auth.Service,
the optional seed user, the session cookie transport, and the router with every route registered.

[*Ranger.Guide] begins the HTTP web server on PORT and, when PORTHTTPS is set, an HTTPS one too.
Stop both with [*Ranger.Cancel] or by sending a signal [*Ranger.Guide] listens for.
In-flight requests get five seconds to finish.

# Storage

With DATABASE_URL, DB_URL or DATABASE_NAME set, users live in PostgreSQL
and migrations run at startup.
Otherwise, DEVELOPMENT, DEMO and TESTING keep users in memory; other environments refuse to start.

# Configuration

Environment variables configure an accounts service.
They may be set in a file found at ENV_PATH (default: .env);
variables already set in the process take precedence.

  - CERT_DIR: the directory holding privkey.pem, cert.pem and chain.pem; default: certs
  - DATABASE_HOST: the host the database is running on; default: localhost
  - DATABASE_MAX_IDLE_CXNS: the number of idle connections kept in the pool; default: 1
  - DATABASE_NAME: the name of the database
  - DATABASE_PASSWORD: the password for authenticating a connection to the database
  - DATABASE_PORT: the port the database is listening on; default: 5432
  - DATABASE_SSLMODE: the SSL mode of the connection; default: prefer
  - DATABASE_URL: the fully-qualified connection string; replaces all other DATABASE_* env vars
  - DATABASE_USER: the user for authenticating a connection to the database
  - DB_URL, PASSWORD_SERVER: the host and postgres user password of a legacy deployment's database
  - ENVIRONMENT: the environment the service runs in; default: DEVELOPMENT
  - GOOGLE_CLIENT_ID: the audience of Google ID tokens; without it, POST /google-login always fails
  - LOG_JSON: write logs as JSON in DEVELOPMENT too; default: false
  - LOG_LEVEL: the minimum level of app logs; default: INFO
  - PORT: the port the HTTP web server listens on; default: 3000
  - PORTHTTPS: the port the HTTPS web server listens on
  - SECRET: the key signing session tokens; required
  - SEED_EMAIL, SEED_FIRSTNAME, SEED_LASTNAME, SEED_USERNAME, PASSWORD_DB_EXAMPLE: a user created at startup
  - SENTRY_DSN: report errors and panics to Sentry
  - SERVER_IDLE_TIMEOUT: default: 120s
  - SERVER_READ_TIMEOUT: default: 5s
  - SERVER_WRITE_TIMEOUT: default: 5s
  - TRUSTED_IP_HEADERS: comma-separated headers a proxy sets with the client address; default: X-Forwarded-For,X-Real-Ip
  - TOKEN_TTL: when positive, session tokens expire after this duration; default: 0s
  - URL_CLIENT: the single origin allowed to make cross-origin requests; default: http://localhost:5173
  - URL_SERVER: the base URL the service is reachable at; default: http://localhost
*/
package ranger
