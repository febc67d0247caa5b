package devserver

import (
	"github.com/rohanthewiz/element"
)

// WebSocketPath is where the thin client connects.
const WebSocketPath = "/_approuter/ws"

// shellPage is the document served for every route. The thin client fills
// the app element once the socket is open.
type shellPage struct {
	Title string
}

func (p shellPage) Render(b *element.Builder) any {
	b.Html().R(
		b.Head().R(
			b.Meta("charset", "utf-8"),
			b.Title().T(p.Title),
			b.Style().T(shellStyle),
		),
		b.Body().R(
			b.Div("id", "approuter-app").R(),
			b.Script().T(clientScript),
		),
	)
	return nil
}

// renderShell returns the shell document.
func renderShell(title string) string {
	b := element.NewBuilder()
	element.RenderComponents(b, shellPage{Title: title})
	return "<!DOCTYPE html>" + b.String()
}

const shellStyle = `
#approuter-error{position:fixed;bottom:0;left:0;right:0;background:#1a1a1a;color:#ff5555;font-family:monospace;padding:12px;white-space:pre-wrap;z-index:999999}
.approuter-error{color:#ff5555}
`

// clientScript is the thin client. It forwards navigations and link clicks
// and applies the frames the server sends back.
const clientScript = `
(function() {
    'use strict';

    var app = document.getElementById('approuter-app');
    var ws = null;
    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;

    function send(msg) {
        if (ws && ws.readyState === WebSocket.OPEN) {
            ws.send(JSON.stringify(msg));
        }
    }

    function here() {
        return location.pathname + location.search + location.hash;
    }

    function outlet() {
        return app.querySelector('[data-outlet]') || app;
    }

    function showError(message) {
        var el = document.getElementById('approuter-error');
        if (!el) {
            el = document.createElement('div');
            el.id = 'approuter-error';
            document.body.appendChild(el);
        }
        el.textContent = message;
    }

    function clearError() {
        var el = document.getElementById('approuter-error');
        if (el) {
            el.remove();
        }
    }

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + '` + WebSocketPath + `');

        ws.onopen = function() {
            reconnectDelay = 1000;
            send({type: 'init', url: here()});
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }

            switch (msg.type) {
                case 'mount':
                    app.innerHTML = msg.html;
                    clearError();
                    break;
                case 'content':
                    outlet().innerHTML = msg.html;
                    clearError();
                    break;
                case 'push':
                    history.pushState(null, '', msg.url);
                    break;
                case 'replace':
                    history.replaceState(null, '', msg.url);
                    break;
                case 'route':
                    window.dispatchEvent(new CustomEvent('route-change', {
                        detail: {path: msg.path, params: msg.params || {}, query: msg.query || {}}
                    }));
                    break;
                case 'follow':
                    if (msg.target && msg.target !== '_self') {
                        window.open(msg.url, msg.target);
                    } else {
                        location.assign(msg.url);
                    }
                    break;
                case 'reload':
                    location.reload();
                    break;
                case 'error':
                    showError((msg.code ? msg.code + ': ' : '') + msg.message);
                    break;
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    // nativeClick reports clicks the browser handles itself: new windows,
    // downloads, fragment jumps and other origins.
    function nativeClick(e, a) {
        if (e.defaultPrevented || e.button !== 0) {
            return true;
        }
        if (e.ctrlKey || e.metaKey || e.shiftKey || e.altKey) {
            return true;
        }
        if (a.hasAttribute('download')) {
            return true;
        }
        var target = (a.getAttribute('target') || '').toLowerCase();
        if (target !== '' && target !== '_self') {
            return true;
        }
        if ((' ' + (a.getAttribute('rel') || '').toLowerCase() + ' ').indexOf(' external ') >= 0) {
            return true;
        }
        var href = a.getAttribute('href');
        if (href === '' || href.charAt(0) === '#') {
            return true;
        }
        return a.origin !== location.origin;
    }

    document.addEventListener('click', function(e) {
        var a = e.target.closest && e.target.closest('a[href]');
        if (!a || !ws || ws.readyState !== WebSocket.OPEN || nativeClick(e, a)) {
            return;
        }
        e.preventDefault();
        send({
            type: 'click',
            href: a.getAttribute('href'),
            button: e.button,
            ctrl: e.ctrlKey,
            meta: e.metaKey,
            shift: e.shiftKey,
            alt: e.altKey,
            target: a.getAttribute('target') || '',
            download: a.hasAttribute('download'),
            rel: a.getAttribute('rel') || ''
        });
    });

    window.addEventListener('popstate', function() {
        send({type: 'popstate', url: here()});
    });

    window.approuter = {
        navigate: function(url) { send({type: 'navigate', url: url}); }
    };

    if (document.readyState === 'loading') {
        document.addEventListener('DOMContentLoaded', connect);
    } else {
        connect();
    }
})();
`
