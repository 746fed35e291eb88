package handlers

// AdminLoginPage is served instead of the admin panel while the caller has no valid session
const AdminLoginPage = `<!DOCTYPE html>
<html lang="es"><head><meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>Admin | Ingreso</title>
<style>
  body{margin:0;background:#0f172a;color:#e5e7eb;font-family:system-ui,-apple-system,Segoe UI,Roboto,sans-serif}
  .wrap{min-height:100vh;display:flex;align-items:center;justify-content:center;padding:20px}
  .card{background:rgba(255,255,255,.06);border:1px solid rgba(255,255,255,.12);border-radius:16px;padding:24px;max-width:420px;width:100%;text-align:center}
  h1{margin:0 0 8px}
  .hint{color:#94a3b8}
  .row{display:flex;gap:10px;margin-top:12px}
  input{flex:1;padding:12px;border-radius:10px;border:1px solid rgba(255,255,255,.2);background:rgba(255,255,255,.07);color:#fff;outline:none}
  button{padding:12px 16px;border-radius:10px;border:0;background:#16a34a;color:#fff;font-weight:800;cursor:pointer}
  .msg{min-height:22px;color:#ffd28f;margin-top:8px}
</style>
</head><body>
<div class="wrap">
  <div class="card">
    <h1>Ingreso Admin</h1>
    <div class="hint">Ingresá tu código para acceder al panel.</div>
    <div class="row">
      <input id="code" type="password" placeholder="Código de admin" />
      <button id="go">Entrar</button>
    </div>
    <div id="msg" class="msg"></div>
  </div>
</div>
<script>
async function login(){
  const code = document.getElementById('code').value.trim();
  const r = await fetch('/api/admin/login', {
    method:'POST',
    headers:{'Content-Type':'application/json'},
    body: JSON.stringify({ code })
  });
  if(r.ok){ location.href='/admin/'; }
  else{
    const d = await r.json().catch(()=>({}));
    document.getElementById('msg').textContent = d.error || 'Código incorrecto';
  }
}
document.getElementById('go').addEventListener('click', login);
document.getElementById('code').addEventListener('keydown', e=>{ if(e.key==='Enter') login(); });
</script>
</body></html>`
