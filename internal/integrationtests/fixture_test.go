package integrationtests

import (
	"testing"

	"github.com/vk/scaffgo/internal/testutil"
)

// djangoFiles is a condensed web-project blueprint exercising the whole
// engine surface: validated options, dependent visibility, derived flags, an
// exclusive entrypoint group, multi-select deployment targets, and artifact
// bodies whose content reacts to every toggle.
func djangoFiles() map[string]string {
	return map[string]string{
		"blueprint/options.hcl": `
option "project_name" {
  type      = string
  prompt    = "Human-readable project name"
  validator = trimspace(value) != ""
}

option "database" {
  type    = choice
  choices = ["postgresql", "sqlite"]
  default = "postgresql"
}

option "cache" {
  type    = choice
  choices = ["redis", "none"]
  default = "none"
}

option "background_tasks" {
  type    = choice
  choices = ["celery", "none"]
  default = "none"
}

option "use_channels" {
  type    = bool
  default = false
}

option "use_stripe" {
  type    = bool
  default = false
}

option "stripe_mode" {
  type         = choice
  choices      = ["basic", "advanced"]
  default      = "basic"
  visible_when = use_stripe
}

option "use_2fa" {
  type    = bool
  default = false
}

option "use_i18n" {
  type    = bool
  default = false
}

option "deployment_targets" {
  type    = multichoice
  choices = ["render", "flyio", "docker"]
  default = []
}

derived "needs_celery_beat" {
  value = background_tasks == "celery"
}

derived "needs_billing_app" {
  value = use_stripe
}

derived "db_driver" {
  value = database == "postgresql" ? "psycopg[binary]" : "sqlite-builtin"
}
`,
		"blueprint/artifacts.hcl": `
exclusive_group "http_entrypoint" {
  description = "Exactly one of WSGI or ASGI must be emitted."
}

artifact "manage.py" {
  content = "#!/usr/bin/env python\n# ${project_name}\n"
}

artifact "requirements.txt" {
  source = "requirements.txt.tmpl"
}

artifact "config/settings/base.py" {
  source = "config/settings/base.py.tmpl"
}

artifact "config/wsgi.py" {
  source     = "config/wsgi.py.tmpl"
  include_if = !use_channels
  group      = "http_entrypoint"
}

artifact "config/asgi.py" {
  source     = "config/asgi.py.tmpl"
  include_if = use_channels
  group      = "http_entrypoint"
}

artifact "config/celery.py" {
  source     = "config/celery.py.tmpl"
  include_if = background_tasks == "celery"
}

artifact "apps/billing/models.py" {
  source     = "apps/billing/models.py.tmpl"
  include_if = needs_billing_app
}

artifact "scripts/init_sqlite.sh" {
  content    = "#!/bin/sh\ntouch db.sqlite3\n"
  include_if = database == "sqlite"
}

artifact "static" {
  kind = "directory"
}

artifact "render.yaml" {
  source     = "deploy/render.yaml.tmpl"
  include_if = contains(deployment_targets, "render")
}

artifact "deploy/render" {
  kind       = "directory"
  include_if = contains(deployment_targets, "render")
}

artifact "deploy/render/build.sh" {
  content    = "#!/bin/bash\npip install -r requirements.txt\n"
  include_if = contains(deployment_targets, "render")
}

artifact "fly.toml" {
  source     = "deploy/fly.toml.tmpl"
  include_if = contains(deployment_targets, "flyio")
}

artifact "deploy/flyio" {
  kind       = "directory"
  include_if = contains(deployment_targets, "flyio")
}

artifact "Dockerfile" {
  content    = "FROM python:3.12-slim\nWORKDIR /app\nCOPY . .\n"
  include_if = contains(deployment_targets, "docker")
}
`,
		"templates/requirements.txt.tmpl": `django>=5.0
${db_driver}
%{ if cache == "redis" ~}
django-redis
%{ endif ~}
%{ if background_tasks == "celery" ~}
celery
django-celery-beat
%{ endif ~}
%{ if use_channels ~}
channels
%{ endif ~}
%{ if needs_billing_app ~}
stripe
%{ endif ~}
%{ if use_2fa ~}
django-otp
%{ endif ~}
`,
		"templates/config/settings/base.py.tmpl": `PROJECT_NAME = "${project_name}"
DATABASE_ENGINE = "${database}"
%{ if use_channels ~}
ASGI_APPLICATION = "config.asgi.application"
%{ else ~}
WSGI_APPLICATION = "config.wsgi.application"
%{ endif ~}
%{ if cache == "redis" ~}
CACHES = {"default": {"BACKEND": "django_redis.cache.RedisCache"}}
%{ endif ~}
%{ if needs_celery_beat ~}
CELERY_BROKER_URL = "redis://localhost:6379/0"
INSTALLED_TASK_APPS = ["django_celery_beat", "django_celery_results"]
%{ endif ~}
%{ if use_2fa ~}
OTP_MIDDLEWARE = "django_otp.middleware.OTPMiddleware"
%{ endif ~}
USE_I18N = %{ if use_i18n }True%{ else }False%{ endif }
`,
		"templates/config/wsgi.py.tmpl": `from django.core.wsgi import get_wsgi_application
application = get_wsgi_application()
`,
		"templates/config/asgi.py.tmpl": `from channels.routing import ProtocolTypeRouter
application = ProtocolTypeRouter({})
`,
		"templates/config/celery.py.tmpl": `from celery import Celery
app = Celery("${project_name}")
`,
		"templates/apps/billing/models.py.tmpl": `%{ if stripe_mode == "advanced" ~}
from djstripe.models import Subscription

class SubscriptionMetadata:
    pass
%{ else ~}
class StripeCustomer:
    stripe_customer_id = ""
%{ endif ~}
`,
		"templates/deploy/render.yaml.tmpl": `services:
  - type: web
    name: ${project_name}
`,
		"templates/deploy/fly.toml.tmpl": `app = "${project_name}"

[http_service]
  internal_port = 8000
`,
	}
}

// generateDjango runs the fixture with answer overrides on top of a minimal
// valid base.
func generateDjango(t *testing.T, sets ...string) *testutil.HarnessResult {
	t.Helper()
	return testutil.RunGeneration(t, testutil.GenerationInput{
		Files:    djangoFiles(),
		SetPairs: append([]string{"project_name=Test Project"}, sets...),
	})
}
